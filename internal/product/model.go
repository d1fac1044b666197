package product

import (
	"github.com/hypermarketllc/commission-crm/internal/split"
	"gorm.io/gorm"
)

// Product belongs to exactly one carrier and owns the commission splits that
// decide how its premium is divided across positions.
type Product struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"size:255;not null" json:"name"`
	CarrierID uint   `gorm:"not null;index" json:"carrierId"`

	Splits []split.CommissionSplit `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"splits,omitempty"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Product{})
}
