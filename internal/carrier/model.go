package carrier

import (
	"time"

	"github.com/hypermarketllc/commission-crm/internal/product"
	"gorm.io/gorm"
)

// Payment models supported by carriers.
const (
	PaymentTypeAdvance = "advance"
	PaymentTypeMonthly = "monthly"
)

// Carrier is an insurance company. AdvanceRate is a 0-100 percentage of
// annual premium paid up front; AdvancePeriodMonths is how long the carrier
// holds the remainder.
type Carrier struct {
	ID                  uint    `gorm:"primaryKey" json:"id"`
	Name                string  `gorm:"size:255;not null" json:"name"`
	AdvanceRate         float64 `gorm:"not null;default:75" json:"advanceRate"`
	AdvancePeriodMonths int     `gorm:"not null;default:9" json:"advancePeriodMonths"`
	PaymentType         string  `gorm:"size:50;not null;default:'advance'" json:"paymentType"`

	Products []product.Product `gorm:"foreignKey:CarrierID;constraint:OnDelete:CASCADE" json:"products,omitempty"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

// Validate checks the bounds the edit form used to leave unchecked.
func (c *Carrier) Validate() string {
	if c.Name == "" {
		return "name is required"
	}
	if c.AdvanceRate < 0 || c.AdvanceRate > 100 {
		return "advance rate must be between 0 and 100"
	}
	if c.AdvancePeriodMonths < 1 {
		return "advance period must be at least 1 month"
	}
	if c.PaymentType != PaymentTypeAdvance && c.PaymentType != PaymentTypeMonthly {
		return "payment type must be 'advance' or 'monthly'"
	}
	return ""
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Carrier{})
}
