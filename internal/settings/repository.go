package settings

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultAdvanceRate seeds advance_rate_default for a fresh install, as a
// 0-100 percentage.
const DefaultAdvanceRate = 75

// Repository encapsulates database access for the settings blob.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Get returns the current settings, normalized, falling back to defaults when
// the row does not exist yet.
func (r *Repository) Get() (*Settings, error) {
	var rec Record
	err := r.DB.Where("key = ?", WellKnownKey).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &Settings{AdvanceRateDefault: DefaultAdvanceRate}, nil
	}
	if err != nil {
		return nil, err
	}
	rec.Value.Normalize()
	return &rec.Value, nil
}

// Upsert writes the blob under the well-known key.
func (r *Repository) Upsert(s *Settings) error {
	s.Normalize()
	rec := Record{Key: WellKnownKey, Value: *s}
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&rec).Error
}
