package agent

import (
	"github.com/hypermarketllc/commission-crm/internal/position"
	"gorm.io/gorm"
)

// Agent is a user of the CRM. PositionID is nullable: a freshly invited agent
// has no position until an admin assigns one. UplineID is a single level of
// manager hierarchy.
type Agent struct {
	gorm.Model
	FirstName    string             `json:"firstName"`
	LastName     string             `json:"lastName"`
	Email        string             `json:"email" gorm:"uniqueIndex"`
	Phone        string             `json:"phone"`
	PasswordHash string             `json:"-"`
	IsAdmin      bool               `json:"isAdmin"`
	PositionID   *uint              `json:"positionId" gorm:"index"`
	Position     *position.Position `json:"position,omitempty" gorm:"foreignKey:PositionID"`
	UplineID     *uint              `json:"uplineId"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Agent{})
}
