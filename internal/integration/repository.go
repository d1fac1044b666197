package integration

import "gorm.io/gorm"

// Repository encapsulates database access for integrations.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(i *Integration) error {
	return r.DB.Create(i).Error
}

func (r *Repository) List() ([]Integration, error) {
	var list []Integration
	err := r.DB.Order("id ASC").Find(&list).Error
	return list, err
}

// ListActive returns the integrations the enqueuer should fan out to.
func (r *Repository) ListActive() ([]Integration, error) {
	var list []Integration
	err := r.DB.Where("is_active = ?", true).Find(&list).Error
	return list, err
}

func (r *Repository) FindByID(id uint) (*Integration, error) {
	var i Integration
	if err := r.DB.First(&i, id).Error; err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *Repository) Update(i *Integration) error {
	return r.DB.Save(i).Error
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Integration{}, id).Error
}
