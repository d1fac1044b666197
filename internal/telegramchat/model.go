package telegramchat

import (
	"time"

	"gorm.io/gorm"
)

// Chat is a registered Telegram chat. Registration toggles IsActive rather
// than deleting rows so a chat can be re-registered with history intact.
type Chat struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ChatID   int64  `gorm:"not null;uniqueIndex" json:"chatId"`
	Title    string `gorm:"size:255" json:"title"`
	IsActive bool   `gorm:"not null;default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Chat{})
}
