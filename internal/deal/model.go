package deal

import (
	"time"

	"gorm.io/gorm"
)

// Deal statuses written by the entry form. Transitions are not strictly
// enforced; any value may overwrite any other. The lowercase pair is what the
// commission engine reacts to.
const (
	StatusPending   = "Pending"
	StatusSubmitted = "Submitted"
	StatusApproved  = "Approved"
	StatusRejected  = "Rejected"
	StatusActive    = "active"
	StatusLapsed    = "lapsed"
)

// Deal is one insurance policy sale.
type Deal struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	AgentID        uint      `gorm:"not null;index" json:"agentId"`
	CarrierID      uint      `gorm:"not null;index" json:"carrierId"`
	ProductID      uint      `gorm:"not null;index" json:"productId"`
	ClientName     string    `gorm:"size:255" json:"clientName"`
	ClientPhone    string    `gorm:"size:50" json:"clientPhone"`
	AnnualPremium  float64   `gorm:"not null;default:0" json:"annualPremium"`
	MonthlyPremium float64   `gorm:"not null;default:0" json:"monthlyPremium"`
	PolicyNumber   string    `gorm:"size:100" json:"policyNumber"`
	AppNumber      string    `gorm:"size:100" json:"appNumber"`
	Status         string    `gorm:"size:50;not null;default:'Pending';index" json:"status"`
	SubmittedAt    time.Time `json:"submittedAt"`
	IsReferral     bool      `gorm:"not null;default:false" json:"isReferral"`

	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deletedAt,omitempty"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Deal{})
}
