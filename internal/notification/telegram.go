package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const telegramAPIBase = "https://api.telegram.org"

// TelegramDestination packs a bot token and chat ID into the destination
// column. Kept as one string so the (deal, destination) unique index covers
// Telegram the same way it covers Discord webhook URLs.
func TelegramDestination(botToken, chatID string) string {
	return botToken + "|" + chatID
}

// TelegramTransport posts queue entries to the Bot API sendMessage endpoint.
// Success requires both a 2xx status and "ok": true in the response body.
type TelegramTransport struct {
	BaseURL string
	Client  *http.Client
}

func NewTelegramTransport() *TelegramTransport {
	return &TelegramTransport{
		BaseURL: telegramAPIBase,
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *TelegramTransport) Name() string { return ChannelTelegram }

func (t *TelegramTransport) Send(ctx context.Context, entry QueueEntry) error {
	botToken, chatID, ok := strings.Cut(entry.Destination, "|")
	if !ok || botToken == "" || chatID == "" {
		return fmt.Errorf("malformed telegram destination")
	}

	body, err := json.Marshal(map[string]string{
		"chat_id":    chatID,
		"text":       entry.Payload,
		"parse_mode": "HTML",
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.BaseURL, botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var apiResp struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("bot API returned HTTP %d with unreadable body", resp.StatusCode)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 || !apiResp.OK {
		if apiResp.Description != "" {
			return fmt.Errorf("bot API error: %s", apiResp.Description)
		}
		return fmt.Errorf("bot API returned HTTP %d", resp.StatusCode)
	}
	return nil
}
