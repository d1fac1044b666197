package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/hypermarketllc/commission-crm/internal/metrics"
)

// Transport delivers one queue entry to its external destination.
type Transport interface {
	Name() string
	Send(ctx context.Context, entry QueueEntry) error
}

// Store is the slice of the queue repository the processor needs.
type Store interface {
	FetchPending(channel string, limit int) ([]QueueEntry, error)
	MarkProcessing(id uint, token string) (bool, error)
	MarkSent(id uint, token string) error
	MarkFailed(id uint, token string, errMsg string) error
}

// PassResult summarizes one processing pass.
type PassResult struct {
	Processed int
	Succeeded int
	Failed    int
}

// Processor polls the queue for one channel and delivers entries through its
// transport. A pass claims each entry before sending (losing the claim race
// means another instance took it), never aborts early, and leaves permanently
// failing entries to age out at the retry cap.
type Processor struct {
	store     Store
	transport Transport
	cache     *DedupCache
	log       *logrus.Logger

	limit     int
	sendDelay time.Duration
	interval  time.Duration

	sleep func(time.Duration)
	cron  *cron.Cron
}

// NewProcessor builds a processor. limit bounds how many entries one pass
// picks up (0 = unbounded); sendDelay spaces consecutive sends for rate
// limited destinations.
func NewProcessor(store Store, transport Transport, log *logrus.Logger, limit int, sendDelay, interval time.Duration) *Processor {
	return &Processor{
		store:     store,
		transport: transport,
		cache:     NewDedupCache(),
		log:       log,
		limit:     limit,
		sendDelay: sendDelay,
		interval:  interval,
		sleep:     time.Sleep,
	}
}

// Start schedules recurring passes. In-flight sends are not cancelled by
// Stop; only future passes are.
func (p *Processor) Start() error {
	if p.cron != nil {
		return fmt.Errorf("processor already started")
	}
	c := cron.New()
	spec := fmt.Sprintf("@every %s", p.interval)
	if _, err := c.AddFunc(spec, func() {
		res, err := p.RunPass(context.Background())
		if err != nil {
			p.log.Errorf("%s queue pass failed: %v", p.transport.Name(), err)
			return
		}
		if res.Processed > 0 {
			p.log.Infof("%s queue pass: processed=%d succeeded=%d failed=%d",
				p.transport.Name(), res.Processed, res.Succeeded, res.Failed)
		}
	}); err != nil {
		return err
	}
	c.Start()
	p.cron = c
	p.log.Infof("%s queue processor started (every %s)", p.transport.Name(), p.interval)
	return nil
}

// Stop cancels future passes.
func (p *Processor) Stop() {
	if p.cron == nil {
		return
	}
	p.cron.Stop()
	p.cron = nil
	p.log.Infof("%s queue processor stopped", p.transport.Name())
}

// RunPass processes the currently pending entries once.
func (p *Processor) RunPass(ctx context.Context) (PassResult, error) {
	channel := p.transport.Name()
	entries, err := p.store.FetchPending(channel, p.limit)
	if err != nil {
		return PassResult{}, err
	}
	metrics.NotificationPassesTotal.WithLabelValues(channel).Inc()

	var res PassResult
	var attempted bool
	for _, entry := range entries {
		if p.cache.Seen(entry.ID) {
			continue
		}

		token := uuid.NewString()
		claimed, err := p.store.MarkProcessing(entry.ID, token)
		if err != nil {
			p.log.Errorf("%s queue: claim entry %d: %v", channel, entry.ID, err)
			continue
		}
		if !claimed {
			// Another processor instance got there first.
			continue
		}

		res.Processed++
		// Space sends, not fetched entries: skipped entries must not delay
		// the first real send.
		if attempted && p.sendDelay > 0 {
			p.sleep(p.sendDelay)
		}
		attempted = true

		if err := p.transport.Send(ctx, entry); err != nil {
			res.Failed++
			metrics.NotificationsAttemptedTotal.WithLabelValues(channel, "failed").Inc()
			p.log.Warnf("%s queue: entry %d attempt %d failed: %v", channel, entry.ID, entry.RetryCount+1, err)
			if err := p.store.MarkFailed(entry.ID, token, err.Error()); err != nil {
				p.log.Errorf("%s queue: record failure for entry %d: %v", channel, entry.ID, err)
			}
			continue
		}

		res.Succeeded++
		metrics.NotificationsAttemptedTotal.WithLabelValues(channel, "sent").Inc()
		p.cache.Add(entry.ID)
		if err := p.store.MarkSent(entry.ID, token); err != nil {
			p.log.Errorf("%s queue: mark entry %d sent: %v", channel, entry.ID, err)
		}
	}

	return res, nil
}
