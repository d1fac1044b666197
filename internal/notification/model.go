package notification

import (
	"time"

	"gorm.io/gorm"
)

// Delivery channels.
const (
	ChannelDiscord  = "discord"
	ChannelTelegram = "telegram"
)

// MaxRetries caps delivery attempts per entry. An entry that fails this many
// times is never selected again; it is abandoned, not marked failed.
const MaxRetries = 3

// QueueEntry is one pending or completed outbound notification. The unique
// index on (deal, destination) stops the enqueuer from inserting two entries
// for the same deal and channel. ClaimToken is the processing marker: a
// processor only sends after winning the conditional update that sets it, so
// two concurrent processors cannot both deliver the same entry.
type QueueEntry struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	DealID      uint       `gorm:"not null;uniqueIndex:ux_deal_destination,priority:1" json:"dealId"`
	Channel     string     `gorm:"size:20;not null;index" json:"channel"`
	Destination string     `gorm:"size:512;not null;uniqueIndex:ux_deal_destination,priority:2" json:"destination"`
	Payload     string     `gorm:"type:text;not null" json:"payload"`
	Sent        bool       `gorm:"not null;default:false;index" json:"sent"`
	SentAt      *time.Time `json:"sentAt,omitempty"`
	Error       string     `gorm:"type:text" json:"error,omitempty"`
	RetryCount  int        `gorm:"not null;default:0" json:"retryCount"`
	ClaimToken  *string    `gorm:"size:64" json:"-"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&QueueEntry{})
}
