package split

import "gorm.io/gorm"

// Repository encapsulates database access for commission splits.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(s *CommissionSplit) error {
	return r.DB.Create(s).Error
}

func (r *Repository) ListByProduct(productID uint) ([]CommissionSplit, error) {
	var list []CommissionSplit
	err := r.DB.Where("product_id = ?", productID).Order("position_id ASC").Find(&list).Error
	return list, err
}

func (r *Repository) FindByID(id uint) (*CommissionSplit, error) {
	var s CommissionSplit
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) Update(s *CommissionSplit) error {
	return r.DB.Save(s).Error
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&CommissionSplit{}, id).Error
}

// SumByProduct returns the total percentage configured for a product.
func (r *Repository) SumByProduct(productID uint) (float64, error) {
	var total float64
	err := r.DB.Model(&CommissionSplit{}).
		Where("product_id = ?", productID).
		Select("COALESCE(SUM(percentage), 0)").
		Scan(&total).Error
	return total, err
}
