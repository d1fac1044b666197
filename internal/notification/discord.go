package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DiscordTransport posts queue entries to per-integration webhook URLs.
// Any 2xx response counts as delivered.
type DiscordTransport struct {
	Client *http.Client
}

func NewDiscordTransport() *DiscordTransport {
	return &DiscordTransport{Client: &http.Client{Timeout: 10 * time.Second}}
}

func (t *DiscordTransport) Name() string { return ChannelDiscord }

func (t *DiscordTransport) Send(ctx context.Context, entry QueueEntry) error {
	body, err := json.Marshal(map[string]string{"content": entry.Payload})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, entry.Destination, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}
