package position

import "gorm.io/gorm"

// Repository encapsulates database access for positions.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(p *Position) error {
	return r.DB.Create(p).Error
}

func (r *Repository) List() ([]Position, error) {
	var list []Position
	err := r.DB.Order("level ASC").Find(&list).Error
	return list, err
}

func (r *Repository) FindByID(id uint) (*Position, error) {
	var p Position
	if err := r.DB.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Update(p *Position) error {
	return r.DB.Save(p).Error
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Position{}, id).Error
}
