package carrier

import "gorm.io/gorm"

// Repository encapsulates database access for carriers.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(c *Carrier) error {
	return r.DB.Create(c).Error
}

func (r *Repository) List() ([]Carrier, error) {
	var list []Carrier
	err := r.DB.Preload("Products").Order("name ASC").Find(&list).Error
	return list, err
}

func (r *Repository) FindByID(id uint) (*Carrier, error) {
	var c Carrier
	if err := r.DB.Preload("Products").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *Repository) Update(c *Carrier) error {
	return r.DB.Save(c).Error
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Carrier{}, id).Error
}
