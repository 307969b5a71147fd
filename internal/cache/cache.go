// Package cache is the report cache: an in-process L1 with TTL and a
// bounded entry count, plus an optional Redis L2 that survives restarts.
// The cache is owned by whoever constructs it and injected into the
// services that need it; there is no package-level instance.
//
// Concurrency: concurrent misses for the same key may both compute and
// both write; the second write wins. Reports are deterministic enough
// from the same inputs that this is acceptable.
package cache

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/9mit/Youtube-Intelligence/pkg/hash"
)

const (
	// DefaultTTL is how long a report stays cached.
	DefaultTTL = 1 * time.Hour
	// DefaultMaxEntries bounds the L1 map.
	DefaultMaxEntries = 500

	cleanupInterval = 5 * time.Minute
	l2KeyPrefix     = "tubetale:"
	l2KeyHashLen    = 24
)

type entry struct {
	data      []byte
	storedAt  time.Time
	expiresAt time.Time
}

// Stats is a snapshot of the cache counters.
type Stats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// Cache is the two-tier report cache. The zero value is not usable; use
// New.
type Cache struct {
	mu         sync.RWMutex
	l1         map[string]*entry
	rdb        *redis.Client // nil when L2 is disabled
	ttl        time.Duration
	maxEntries int

	hits   atomic.Int64
	misses atomic.Int64

	stopCh   chan struct{}
	stopOnce sync.Once
}

// New builds a Cache with the given TTL and L1 bound. redisURL may be
// empty to run L1-only; an unreachable Redis also degrades to L1-only
// with a log line, never an error. A janitor goroutine sweeps expired L1
// entries until Close is called.
func New(redisURL string, ttl time.Duration, maxEntries int) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	c := &Cache{
		l1:         make(map[string]*entry),
		ttl:        ttl,
		maxEntries: maxEntries,
		stopCh:     make(chan struct{}),
	}

	if redisURL != "" {
		opts, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Printf("cache: invalid redis URL, L2 disabled: %v", err)
		} else {
			rdb := redis.NewClient(opts)
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := rdb.Ping(ctx).Err(); err != nil {
				log.Printf("cache: redis unreachable, L2 disabled: %v", err)
			} else {
				c.rdb = rdb
				log.Printf("cache: redis connected (%s)", opts.Addr)
			}
		}
	}

	go c.cleanupLoop()
	return c
}

// Get looks a key up in L1, then L2. An L2 hit repopulates L1.
func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.RLock()
	e, ok := c.l1[key]
	c.mu.RUnlock()

	if ok {
		if time.Now().Before(e.expiresAt) {
			c.hits.Add(1)
			return e.data, true
		}
		c.mu.Lock()
		delete(c.l1, key)
		c.mu.Unlock()
	}

	if c.rdb != nil {
		data, err := c.rdb.Get(ctx, l2Key(key)).Bytes()
		if err == nil {
			c.hits.Add(1)
			c.store(key, data)
			return data, true
		}
		if err != redis.Nil {
			log.Printf("cache: L2 get failed: %v", err)
		}
	}

	c.misses.Add(1)
	return nil, false
}

// Set stores a value in both tiers. L2 write failures are logged and
// ignored; the L1 write always succeeds.
func (c *Cache) Set(ctx context.Context, key string, data []byte) {
	c.store(key, data)

	if c.rdb != nil {
		if err := c.rdb.Set(ctx, l2Key(key), data, c.ttl).Err(); err != nil {
			log.Printf("cache: L2 set failed: %v", err)
		}
	}
}

// Stats returns the hit/miss counters and the current L1 entry count.
func (c *Cache) Stats() Stats {
	c.mu.RLock()
	entries := len(c.l1)
	c.mu.RUnlock()

	return Stats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: entries,
	}
}

// Ping checks the L2 connection. Reports redis.Nil-free nil when L2 is
// healthy and ErrRedisDisabled when no Redis is configured.
func (c *Cache) Ping(ctx context.Context) error {
	if c.rdb == nil {
		return ErrRedisDisabled
	}
	return c.rdb.Ping(ctx).Err()
}

// ErrRedisDisabled reports that the cache runs without an L2.
var ErrRedisDisabled = redisDisabledError{}

type redisDisabledError struct{}

func (redisDisabledError) Error() string { return "redis not configured" }

// Close stops the janitor and closes the Redis connection if any.
func (c *Cache) Close() error {
	c.stopOnce.Do(func() { close(c.stopCh) })
	if c.rdb != nil {
		return c.rdb.Close()
	}
	return nil
}

// store inserts into L1, evicting if the map is at capacity.
func (c *Cache) store(key string, data []byte) {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.l1[key]; !exists && len(c.l1) >= c.maxEntries {
		c.evictLocked(now)
	}

	c.l1[key] = &entry{
		data:      data,
		storedAt:  now,
		expiresAt: now.Add(c.ttl),
	}
}

// evictLocked frees one slot: expired entries go first, then the oldest
// stored entry. Caller holds the write lock.
func (c *Cache) evictLocked(now time.Time) {
	for k, e := range c.l1 {
		if now.After(e.expiresAt) {
			delete(c.l1, k)
			if len(c.l1) < c.maxEntries {
				return
			}
		}
	}

	for len(c.l1) >= c.maxEntries {
		var oldestKey string
		var oldestAt time.Time
		for k, e := range c.l1 {
			if oldestKey == "" || e.storedAt.Before(oldestAt) {
				oldestKey = k
				oldestAt = e.storedAt
			}
		}
		if oldestKey == "" {
			return
		}
		delete(c.l1, oldestKey)
	}
}

func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for k, e := range c.l1 {
				if now.After(e.expiresAt) {
					delete(c.l1, k)
				}
			}
			c.mu.Unlock()
		case <-c.stopCh:
			return
		}
	}
}

// l2Key derives the Redis key. Hashing keeps keys fixed-length and keeps
// raw channel names out of the shared store.
func l2Key(key string) string {
	return l2KeyPrefix + hash.ShortHash(key, l2KeyHashLen)
}
