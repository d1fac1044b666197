package agent

import "gorm.io/gorm"

// Repository encapsulates database access for agents.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

func (r *Repository) Create(a *Agent) error {
	return r.DB.Create(a).Error
}

func (r *Repository) List() ([]Agent, error) {
	var list []Agent
	err := r.DB.Preload("Position").Find(&list).Error
	return list, err
}

func (r *Repository) FindByID(id uint) (*Agent, error) {
	var a Agent
	if err := r.DB.Preload("Position").First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) FindByEmail(email string) (*Agent, error) {
	var a Agent
	if err := r.DB.Preload("Position").Where("email = ?", email).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *Repository) Update(a *Agent) error {
	return r.DB.Save(a).Error
}

// Delete removes the agent and, through the FK constraints declared on the
// commission table, cascades to its commission rows.
func (r *Repository) Delete(id uint) error {
	return r.DB.Delete(&Agent{}, id).Error
}
