package commission

import (
	"time"

	"gorm.io/gorm"
)

// Commission types.
const (
	TypeAdvance = "advance"
	TypeFuture  = "future"
	TypeMonthly = "monthly"
)

// Recipient roles.
const (
	RoleAgent = "agent"
	RoleOwner = "owner"
)

// Commission is one payable (or reversing) line for a deal and recipient.
// Rows are append-only: a chargeback inserts a negative mirror row pointing
// at the original via ParentID, and a reinstatement inserts a positive mirror
// of the chargeback. Business logic never mutates or deletes existing rows;
// only cascading deletes from an agent or deal removal touch them.
type Commission struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	DealID         uint       `gorm:"not null;index;constraint:OnDelete:CASCADE" json:"dealId"`
	AgentID        uint       `gorm:"not null;index" json:"agentId"`
	Role           string     `gorm:"size:20;not null" json:"role"`
	Type           string     `gorm:"size:20;not null" json:"type"`
	Amount         float64    `gorm:"not null;default:0" json:"amount"`
	Percentage     float64    `gorm:"not null;default:0" json:"percentage"`
	PaymentDate    time.Time  `gorm:"not null" json:"paymentDate"`
	IsChargeback   bool       `gorm:"not null;default:false;index" json:"isChargeback"`
	ChargebackDate *time.Time `json:"chargebackDate,omitempty"`
	ParentID       *uint      `gorm:"index" json:"parentId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Commission{})
}
