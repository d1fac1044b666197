package integration

import (
	"time"

	"gorm.io/gorm"
)

// Integration types.
const (
	TypeDiscord  = "discord"
	TypeTelegram = "telegram"
)

// Config is the per-integration configuration blob. Discord uses WebhookURL;
// Telegram uses BotToken plus either a fixed ChatID or, when ChatID is empty,
// every active chat in the registry.
type Config struct {
	WebhookURL          string `json:"webhookUrl,omitempty"`
	BotToken            string `json:"botToken,omitempty"`
	ChatID              string `json:"chatId,omitempty"`
	NotifyOnDealCreated bool   `json:"notifyOnDealCreated"`
}

// Integration is one configured outbound channel. Toggling IsActive off stops
// new queue entries; already-queued ones still deliver.
type Integration struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Name     string `gorm:"size:255;not null" json:"name"`
	Type     string `gorm:"size:20;not null;index" json:"type"`
	Config   Config `gorm:"type:jsonb;serializer:json" json:"config"`
	IsActive bool   `gorm:"not null;default:true;index" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Integration{})
}
