package notification

import "sync"

const (
	dedupCap   = 1000
	dedupEvict = 500
)

// DedupCache remembers which queue entries this process already handled so a
// pass never sends the same entry twice within one session. It is bounded:
// past the cap the oldest half is evicted. Cross-process protection comes
// from the claim token on the row, not from this cache.
type DedupCache struct {
	mu    sync.Mutex
	seen  map[uint]struct{}
	order []uint
}

func NewDedupCache() *DedupCache {
	return &DedupCache{seen: make(map[uint]struct{})}
}

// Seen reports whether the entry was already processed this session.
func (c *DedupCache) Seen(id uint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.seen[id]
	return ok
}

// Add records the entry, evicting the oldest half when past the cap.
func (c *DedupCache) Add(id uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.seen[id]; ok {
		return
	}
	c.seen[id] = struct{}{}
	c.order = append(c.order, id)
	if len(c.order) > dedupCap {
		for _, old := range c.order[:dedupEvict] {
			delete(c.seen, old)
		}
		c.order = append([]uint(nil), c.order[dedupEvict:]...)
	}
}

// Len returns the number of remembered entries.
func (c *DedupCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}
