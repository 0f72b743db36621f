package services

import (
	"github.com/maxaizer/job-keywords/internal/domain/models"
	"github.com/maxaizer/job-keywords/internal/logger"
	gocache "github.com/patrickmn/go-cache"
	log "github.com/sirupsen/logrus"
	"slices"
	"sync"
	"time"
)

const DefaultCacheTTL = 10 * time.Minute

type cacheEntry struct {
	records   []models.JobRecord
	createdAt time.Time
	timer     *time.Timer
}

// ResultCache keeps mapped search results for a fixed ttl. Every Put schedules its own removal,
// and that removal only deletes the exact entry it was scheduled for.
type ResultCache struct {
	mu     sync.Mutex
	store  *gocache.Cache
	ttl    time.Duration
	closed bool
}

// NewResultCache creates a cache without a go-cache janitor: every entry is removed by its own
// timer, so nothing keeps running once Close has stopped the timers.
func NewResultCache(ttl time.Duration) *ResultCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &ResultCache{
		store: gocache.New(ttl, gocache.NoExpiration),
		ttl:   ttl,
	}
}

func (c *ResultCache) TTL() time.Duration {
	return c.ttl
}

func (c *ResultCache) Get(key string) ([]models.JobRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, found := c.lookup(key)
	if !found {
		return nil, false
	}
	return slices.Clone(entry.records), true
}

func (c *ResultCache) Put(key string, records []models.JobRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	if previous, found := c.lookup(key); found {
		previous.timer.Stop()
	}

	entry := &cacheEntry{records: slices.Clone(records), createdAt: time.Now()}
	entry.timer = time.AfterFunc(c.ttl, func() {
		c.expire(key, entry)
	})
	c.store.Set(key, entry, c.ttl)
}

// Len reports the number of unexpired entries.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.store.Items())
}

// Close cancels pending expiry timers and drops every entry. Puts after Close are ignored.
func (c *ResultCache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true

	for _, item := range c.store.Items() {
		if entry, ok := item.Object.(*cacheEntry); ok {
			entry.timer.Stop()
		}
	}
	c.store.Flush()
}

func (c *ResultCache) expire(key string, entry *cacheEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	current, found := c.store.Get(key)
	// not found means whatever is stored has already passed its deadline
	if !found || current == entry {
		c.store.Delete(key)
		log.Debugf("cache entry %s expired after %v", key, time.Since(entry.createdAt).Round(time.Millisecond))
	}
}

func (c *ResultCache) lookup(key string) (*cacheEntry, bool) {
	value, found := c.store.Get(key)
	if !found {
		return nil, false
	}

	entry, ok := value.(*cacheEntry)
	if !ok {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeCache).
			Errorf("unexpected value of type %T stored for key %s, treating as miss", value, key)
		c.store.Delete(key)
		return nil, false
	}
	return entry, true
}
