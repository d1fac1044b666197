package product

import "gorm.io/gorm"

// Repository encapsulates database access for products.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(p *Product) error {
	return r.DB.Create(p).Error
}

func (r *Repository) ListByCarrier(carrierID uint) ([]Product, error) {
	var list []Product
	err := r.DB.Where("carrier_id = ?", carrierID).Preload("Splits").Find(&list).Error
	return list, err
}

func (r *Repository) FindByID(id uint) (*Product, error) {
	var p Product
	if err := r.DB.Preload("Splits").First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repository) Update(p *Product) error {
	return r.DB.Save(p).Error
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Product{}, id).Error
}
