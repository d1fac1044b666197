package notification

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

// memStore mimics the queue repository semantics in memory: pending means
// unsent, under the retry cap and unclaimed; claims are conditional.
type memStore struct {
	mu      sync.Mutex
	entries map[uint]*QueueEntry
	// when set, MarkProcessing always loses the claim race
	denyClaims bool
}

func newMemStore(entries ...*QueueEntry) *memStore {
	s := &memStore{entries: make(map[uint]*QueueEntry)}
	for _, e := range entries {
		s.entries[e.ID] = e
	}
	return s
}

func (s *memStore) FetchPending(channel string, limit int) ([]QueueEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []QueueEntry
	for _, e := range s.entries {
		if e.Channel == channel && !e.Sent && e.RetryCount < MaxRetries && e.ClaimToken == nil {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) MarkProcessing(id uint, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.denyClaims {
		return false, nil
	}
	e, ok := s.entries[id]
	if !ok || e.Sent || e.RetryCount >= MaxRetries || e.ClaimToken != nil {
		return false, nil
	}
	e.ClaimToken = &token
	return true, nil
}

func (s *memStore) MarkSent(id uint, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || e.ClaimToken == nil || *e.ClaimToken != token {
		return errors.New("claim token mismatch")
	}
	e.Sent = true
	e.ClaimToken = nil
	return nil
}

func (s *memStore) MarkFailed(id uint, token string, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok || e.ClaimToken == nil || *e.ClaimToken != token {
		return errors.New("claim token mismatch")
	}
	e.RetryCount++
	e.Error = errMsg
	e.ClaimToken = nil
	return nil
}

type fakeTransport struct {
	channel string
	fail    bool
	sends   int
}

func (t *fakeTransport) Name() string { return t.channel }

func (t *fakeTransport) Send(ctx context.Context, entry QueueEntry) error {
	t.sends++
	if t.fail {
		return fmt.Errorf("destination unreachable")
	}
	return nil
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestRunPassSendsAndMarksSent(t *testing.T) {
	store := newMemStore(
		&QueueEntry{ID: 1, DealID: 1, Channel: ChannelDiscord, Destination: "https://example.com/a"},
		&QueueEntry{ID: 2, DealID: 1, Channel: ChannelDiscord, Destination: "https://example.com/b"},
		&QueueEntry{ID: 3, DealID: 1, Channel: ChannelTelegram, Destination: "tok|42"},
	)
	transport := &fakeTransport{channel: ChannelDiscord}
	p := NewProcessor(store, transport, testLogger(), 0, 0, 0)

	res, err := p.RunPass(context.Background())
	if err != nil {
		t.Fatalf("RunPass: %v", err)
	}
	if res.Processed != 2 || res.Succeeded != 2 || res.Failed != 0 {
		t.Fatalf("pass result = %+v, want 2 processed, 2 succeeded", res)
	}
	if !store.entries[1].Sent || !store.entries[2].Sent {
		t.Error("discord entries not marked sent")
	}
	if store.entries[3].Sent {
		t.Error("telegram entry sent by discord processor")
	}
}

func TestRunPassRespectsLimit(t *testing.T) {
	store := newMemStore(
		&QueueEntry{ID: 1, Channel: ChannelDiscord, Destination: "https://example.com/a"},
		&QueueEntry{ID: 2, Channel: ChannelDiscord, Destination: "https://example.com/b"},
		&QueueEntry{ID: 3, Channel: ChannelDiscord, Destination: "https://example.com/c"},
	)
	transport := &fakeTransport{channel: ChannelDiscord}
	p := NewProcessor(store, transport, testLogger(), 2, 0, 0)

	res, err := p.RunPass(context.Background())
	if err != nil {
		t.Fatalf("RunPass: %v", err)
	}
	if res.Processed != 2 {
		t.Fatalf("processed %d entries, want 2", res.Processed)
	}
	if store.entries[3].Sent {
		t.Error("entry past the limit was sent")
	}
}

func TestFailingEntryAgesOutAtRetryCap(t *testing.T) {
	store := newMemStore(&QueueEntry{ID: 7, Channel: ChannelDiscord, Destination: "https://example.com/x"})
	transport := &fakeTransport{channel: ChannelDiscord, fail: true}
	p := NewProcessor(store, transport, testLogger(), 0, 0, 0)

	for i := 0; i < 5; i++ {
		if _, err := p.RunPass(context.Background()); err != nil {
			t.Fatalf("pass %d: %v", i, err)
		}
	}

	if transport.sends != MaxRetries {
		t.Errorf("transport called %d times, want %d", transport.sends, MaxRetries)
	}
	e := store.entries[7]
	if e.RetryCount != MaxRetries {
		t.Errorf("retry count = %d, want %d", e.RetryCount, MaxRetries)
	}
	if e.Sent {
		t.Error("failed entry marked sent")
	}
	if e.Error == "" {
		t.Error("last error not recorded")
	}

	pending, _ := store.FetchPending(ChannelDiscord, 0)
	if len(pending) != 0 {
		t.Errorf("aged-out entry still pending: %d", len(pending))
	}
}

func TestSessionDedupSuppressesSecondSend(t *testing.T) {
	entry := &QueueEntry{ID: 5, Channel: ChannelDiscord, Destination: "https://example.com/x"}
	store := newMemStore(entry)
	transport := &fakeTransport{channel: ChannelDiscord}
	p := NewProcessor(store, transport, testLogger(), 0, 0, 0)

	if _, err := p.RunPass(context.Background()); err != nil {
		t.Fatalf("first pass: %v", err)
	}
	if transport.sends != 1 {
		t.Fatalf("sends after first pass = %d, want 1", transport.sends)
	}

	// Simulate the row showing up pending again (e.g. a stale replica read).
	store.mu.Lock()
	entry.Sent = false
	entry.ClaimToken = nil
	store.mu.Unlock()

	if _, err := p.RunPass(context.Background()); err != nil {
		t.Fatalf("second pass: %v", err)
	}
	if transport.sends != 1 {
		t.Errorf("sends after second pass = %d, want 1 (dedup cache should skip)", transport.sends)
	}
}

func TestSendDelaySpacesOnlyActualSends(t *testing.T) {
	store := newMemStore(
		&QueueEntry{ID: 1, Channel: ChannelDiscord, Destination: "https://example.com/a"},
		&QueueEntry{ID: 2, Channel: ChannelDiscord, Destination: "https://example.com/b"},
		&QueueEntry{ID: 3, Channel: ChannelDiscord, Destination: "https://example.com/c"},
	)
	transport := &fakeTransport{channel: ChannelDiscord}
	p := NewProcessor(store, transport, testLogger(), 0, 500*time.Millisecond, 0)

	var sleeps int
	p.sleep = func(time.Duration) { sleeps++ }
	p.cache.Add(1)

	if _, err := p.RunPass(context.Background()); err != nil {
		t.Fatalf("RunPass: %v", err)
	}
	if transport.sends != 2 {
		t.Fatalf("sends = %d, want 2", transport.sends)
	}
	// One gap between the two sends; none before the first, even though the
	// first fetched entry was skipped.
	if sleeps != 1 {
		t.Errorf("slept %d times, want 1", sleeps)
	}
}

func TestSendDelaySkippedWhenNothingSends(t *testing.T) {
	store := newMemStore(
		&QueueEntry{ID: 1, Channel: ChannelDiscord, Destination: "https://example.com/a"},
		&QueueEntry{ID: 2, Channel: ChannelDiscord, Destination: "https://example.com/b"},
	)
	transport := &fakeTransport{channel: ChannelDiscord}
	p := NewProcessor(store, transport, testLogger(), 0, 500*time.Millisecond, 0)

	var sleeps int
	p.sleep = func(time.Duration) { sleeps++ }
	p.cache.Add(1)
	p.cache.Add(2)

	if _, err := p.RunPass(context.Background()); err != nil {
		t.Fatalf("RunPass: %v", err)
	}
	if transport.sends != 0 || sleeps != 0 {
		t.Errorf("sends = %d, sleeps = %d; an all-skipped pass must do neither", transport.sends, sleeps)
	}
}

func TestLostClaimRaceSkipsSend(t *testing.T) {
	store := newMemStore(&QueueEntry{ID: 9, Channel: ChannelDiscord, Destination: "https://example.com/x"})
	store.denyClaims = true
	transport := &fakeTransport{channel: ChannelDiscord}
	p := NewProcessor(store, transport, testLogger(), 0, 0, 0)

	res, err := p.RunPass(context.Background())
	if err != nil {
		t.Fatalf("RunPass: %v", err)
	}
	if res.Processed != 0 {
		t.Errorf("processed %d, want 0 when every claim is lost", res.Processed)
	}
	if transport.sends != 0 {
		t.Errorf("transport called %d times, want 0", transport.sends)
	}
}
