package integration

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/hypermarketllc/commission-crm/internal/notification"
	"github.com/hypermarketllc/commission-crm/internal/telegramchat"
)

// IntegrationSource lists the integrations eligible for fan-out.
type IntegrationSource interface {
	ListActive() ([]Integration, error)
}

// QueueStore inserts notification queue entries.
type QueueStore interface {
	Enqueue(e *notification.QueueEntry) error
}

// ChatRegistry lists the active registered Telegram chats.
type ChatRegistry interface {
	ListActive() ([]telegramchat.Chat, error)
}

// Enqueuer fans a deal event out to every active integration by inserting
// notification queue entries. It replaces the database trigger from the
// original design; the unique index on (deal, destination) still suppresses
// duplicates, so re-running for the same deal is harmless.
type Enqueuer struct {
	DB        *gorm.DB
	Repo      IntegrationSource
	NotifRepo QueueStore
	Chats     ChatRegistry
	Log       *logrus.Logger
}

func NewEnqueuer(db *gorm.DB, repo IntegrationSource, notifRepo QueueStore, chats ChatRegistry, log *logrus.Logger) *Enqueuer {
	return &Enqueuer{DB: db, Repo: repo, NotifRepo: notifRepo, Chats: chats, Log: log}
}

type dealMessage struct {
	DealID         uint
	ClientName     string
	PolicyNumber   string
	AnnualPremium  float64
	IsReferral     bool
	AgentFirstName string
	AgentLastName  string
	CarrierName    string
	ProductName    string
}

// EnqueueDealCreated inserts queue entries for a freshly created deal.
// Individual enqueue failures are logged and skipped; the deal itself is
// already committed and delivery problems belong to the queue.
func (e *Enqueuer) EnqueueDealCreated(dealID uint) error {
	msg, err := e.loadDealMessage(dealID)
	if err != nil {
		return err
	}
	return e.fanOut(dealID, msg)
}

// fanOut inserts one queue entry per eligible integration destination.
func (e *Enqueuer) fanOut(dealID uint, msg *dealMessage) error {
	integrations, err := e.Repo.ListActive()
	if err != nil {
		return err
	}

	for _, integ := range integrations {
		if !integ.Config.NotifyOnDealCreated {
			continue
		}
		switch integ.Type {
		case TypeDiscord:
			if integ.Config.WebhookURL == "" {
				continue
			}
			e.enqueue(dealID, notification.ChannelDiscord, integ.Config.WebhookURL, renderPlain(msg))

		case TypeTelegram:
			for _, chatID := range e.telegramChatIDs(integ) {
				dest := notification.TelegramDestination(integ.Config.BotToken, chatID)
				e.enqueue(dealID, notification.ChannelTelegram, dest, renderHTML(msg))
			}
		}
	}
	return nil
}

func (e *Enqueuer) enqueue(dealID uint, channel, destination, payload string) {
	err := e.NotifRepo.Enqueue(&notification.QueueEntry{
		DealID:      dealID,
		Channel:     channel,
		Destination: destination,
		Payload:     payload,
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Already queued for this deal and destination.
		return
	}
	if err != nil {
		e.Log.Errorf("enqueue %s notification for deal %d: %v", channel, dealID, err)
	}
}

// telegramChatIDs resolves where a telegram integration delivers: its fixed
// chat when configured, otherwise every active registered chat.
func (e *Enqueuer) telegramChatIDs(integ Integration) []string {
	if integ.Config.BotToken == "" {
		return nil
	}
	if integ.Config.ChatID != "" {
		return []string{integ.Config.ChatID}
	}
	chats, err := e.Chats.ListActive()
	if err != nil {
		e.Log.Errorf("list active telegram chats: %v", err)
		return nil
	}
	ids := make([]string, 0, len(chats))
	for _, c := range chats {
		ids = append(ids, strconv.FormatInt(c.ChatID, 10))
	}
	return ids
}

func (e *Enqueuer) loadDealMessage(dealID uint) (*dealMessage, error) {
	var m dealMessage
	err := e.DB.Table("deals").
		Select(`deals.id AS deal_id, deals.client_name, deals.policy_number, deals.annual_premium, deals.is_referral,
			agents.first_name AS agent_first_name, agents.last_name AS agent_last_name,
			carriers.name AS carrier_name, products.name AS product_name`).
		Joins("JOIN agents ON agents.id = deals.agent_id").
		Joins("LEFT JOIN carriers ON carriers.id = deals.carrier_id").
		Joins("LEFT JOIN products ON products.id = deals.product_id").
		Where("deals.id = ?", dealID).
		Take(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func renderPlain(m *dealMessage) string {
	text := fmt.Sprintf("New deal: %s — %s / %s — $%.2f annual premium (agent: %s %s)",
		m.ClientName, m.CarrierName, m.ProductName, m.AnnualPremium, m.AgentFirstName, m.AgentLastName)
	if m.IsReferral {
		text += " [referral]"
	}
	return text
}

func renderHTML(m *dealMessage) string {
	text := fmt.Sprintf("<b>New deal:</b> %s\n%s / %s\n$%.2f annual premium\nAgent: %s %s",
		m.ClientName, m.CarrierName, m.ProductName, m.AnnualPremium, m.AgentFirstName, m.AgentLastName)
	if m.IsReferral {
		text += "\n<i>referral</i>"
	}
	return text
}
