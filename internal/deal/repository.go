package deal

import "gorm.io/gorm"

// Repository encapsulates database access for deals.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(d *Deal) error {
	return r.DB.Create(d).Error
}

// List returns deals, optionally filtered by agent and status.
func (r *Repository) List(agentID uint, status string) ([]Deal, error) {
	q := r.DB.Order("created_at DESC")
	if agentID != 0 {
		q = q.Where("agent_id = ?", agentID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var list []Deal
	err := q.Find(&list).Error
	return list, err
}

func (r *Repository) FindByID(id uint) (*Deal, error) {
	var d Deal
	if err := r.DB.First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *Repository) Update(d *Deal) error {
	return r.DB.Save(d).Error
}

func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Deal{}, id).Error
}
