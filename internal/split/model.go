package split

import (
	"time"

	"gorm.io/gorm"
)

// CommissionSplit maps (product, position) to the percentage of commission
// that position receives. Splits across positions are expected to sum to at
// most 100 but this is not enforced; the list endpoint reports the sum so the
// settings screen can warn.
type CommissionSplit struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	ProductID  uint    `gorm:"not null;uniqueIndex:ux_product_position,priority:1" json:"productId"`
	PositionID uint    `gorm:"not null;uniqueIndex:ux_product_position,priority:2" json:"positionId"`
	Percentage float64 `gorm:"not null;default:0" json:"percentage"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&CommissionSplit{})
}
