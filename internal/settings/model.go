package settings

import (
	"time"

	"gorm.io/gorm"
)

// WellKnownKey is the single row every settings read and write targets.
const WellKnownKey = "system_settings"

// Settings is the system-wide configuration blob.
type Settings struct {
	Name                       string  `json:"name"`
	LogoURL                    string  `json:"logo_url"`
	AdvanceRateDefault         float64 `json:"advance_rate_default"`
	ReferralLink               string  `json:"referral_link"`
	ReferralLinkText           string  `json:"referral_link_text"`
	CollectClientInfo          bool    `json:"collect_client_info"`
	CollectPolicyInfo          bool    `json:"collect_policy_info"`
	RequireCarrierAgentNumbers bool    `json:"require_carrier_agent_numbers"`
	AllowSplitCommissions      bool    `json:"allow_split_commissions"`
	PayoutsEnabled             bool    `json:"payouts_enabled"`
	BookEnabled                bool    `json:"book_enabled"`
}

// Normalize unifies the advance-rate representation to a 0-100 percentage.
// Older blobs stored it as a 0-1 fraction; values at or below 1 are scaled up
// on read, and writes always store 0-100.
func (s *Settings) Normalize() {
	if s.AdvanceRateDefault > 0 && s.AdvanceRateDefault <= 1 {
		s.AdvanceRateDefault *= 100
	}
}

// Record is the storage row holding the blob under its well-known key.
type Record struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     Settings  `gorm:"type:jsonb;serializer:json" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Record) TableName() string { return "settings" }

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Record{})
}
