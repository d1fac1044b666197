package notification

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestDiscordSend(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	transport := NewDiscordTransport()
	entry := QueueEntry{ID: 1, Channel: ChannelDiscord, Destination: srv.URL, Payload: "New deal submitted"}
	if err := transport.Send(context.Background(), entry); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got["content"] != "New deal submitted" {
		t.Errorf("posted content = %q", got["content"])
	}
}

func TestDiscordSendNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	transport := NewDiscordTransport()
	entry := QueueEntry{ID: 1, Channel: ChannelDiscord, Destination: srv.URL}
	if err := transport.Send(context.Background(), entry); err == nil {
		t.Fatal("expected error for HTTP 429")
	}
}

func TestTelegramSend(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	transport := &TelegramTransport{BaseURL: srv.URL, Client: &http.Client{Timeout: time.Second}}
	entry := QueueEntry{
		ID:          1,
		Channel:     ChannelTelegram,
		Destination: TelegramDestination("123:abc", "-100200"),
		Payload:     "<b>New deal</b>",
	}
	if err := transport.Send(context.Background(), entry); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotPath != "/bot123:abc/sendMessage" {
		t.Errorf("posted to %q", gotPath)
	}
	if gotBody["chat_id"] != "-100200" || gotBody["text"] != "<b>New deal</b>" || gotBody["parse_mode"] != "HTML" {
		t.Errorf("posted body = %v", gotBody)
	}
}

func TestTelegramSendOKFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Bot API can answer 200 with ok:false
		json.NewEncoder(w).Encode(map[string]any{"ok": false, "description": "chat not found"})
	}))
	defer srv.Close()

	transport := &TelegramTransport{BaseURL: srv.URL, Client: &http.Client{Timeout: time.Second}}
	entry := QueueEntry{ID: 1, Destination: TelegramDestination("123:abc", "42")}
	err := transport.Send(context.Background(), entry)
	if err == nil {
		t.Fatal("expected error when ok is false")
	}
	if !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("error %q does not carry the API description", err)
	}
}

func TestTelegramSendMalformedDestination(t *testing.T) {
	transport := &TelegramTransport{BaseURL: "http://unused", Client: &http.Client{Timeout: time.Second}}
	for _, dest := range []string{"", "no-separator", "|42", "123:abc|"} {
		entry := QueueEntry{ID: 1, Destination: dest}
		if err := transport.Send(context.Background(), entry); err == nil {
			t.Errorf("destination %q: expected error", dest)
		}
	}
}
