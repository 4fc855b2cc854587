// Package verify keeps a time-bounded snapshot of the phone numbers the
// account is currently allowed to message.
package verify

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/otpware/dispatch/internal/cache"

	"golang.org/x/sync/singleflight"
)

// DefaultFreshnessWindow is how long a fetched snapshot stays fresh. The
// background poller ticks on the same duration.
const DefaultFreshnessWindow = 5 * time.Minute

const snapshotKeyID = "snapshot"

// snapshotDoc is the JSON form of the snapshot mirrored to the warm store.
type snapshotDoc struct {
	Numbers   []string  `json:"numbers"`
	FetchedAt time.Time `json:"fetchedAt"`
}

// Cache holds the verified-number snapshot. The set is replaced whole on a
// successful fetch and expires by age only; lookup failures are absorbed by
// falling back to the last-known set. Concurrent refreshes collapse into a
// single in-flight fetch.
type Cache struct {
	lookup    LookupClient
	snapshots cache.Cache // optional warm store, may be nil
	window    time.Duration

	sf singleflight.Group

	mu        sync.RWMutex
	numbers   map[string]struct{}
	fetchedAt time.Time
}

// NewCache creates a cache over the given lookup client. snapshots may be
// nil; when present, successful fetches are mirrored there so a restarted
// process can start warm. A window of zero falls back to the default.
func NewCache(lookup LookupClient, snapshots cache.Cache, window time.Duration) *Cache {
	if window <= 0 {
		window = DefaultFreshnessWindow
	}
	return &Cache{
		lookup:    lookup,
		snapshots: snapshots,
		window:    window,
		numbers:   map[string]struct{}{},
	}
}

// WarmStart loads the last mirrored snapshot from the warm store, if it is
// still inside the freshness window. Best-effort: any failure leaves the
// cache cold.
func (c *Cache) WarmStart(ctx context.Context) {
	if c.snapshots == nil {
		return
	}

	raw, err := c.snapshots.Get(ctx, cache.VerifiedNumbers.Key(snapshotKeyID))
	if err != nil {
		return
	}

	var doc snapshotDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return
	}
	if time.Since(doc.FetchedAt) >= c.window {
		return
	}

	c.replace(doc.Numbers, doc.FetchedAt)
	log.Printf("[Verify] Warm start with %d verified numbers (age %s)",
		len(doc.Numbers), time.Since(doc.FetchedAt).Round(time.Second))
}

// IsEligible reports whether the number is in the verified set, refreshing
// the snapshot first when it has gone stale. Lookup failures are absorbed;
// they can only make this answer from a stale or empty set.
func (c *Cache) IsEligible(ctx context.Context, e164 string) bool {
	c.Refresh(ctx)

	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.numbers[e164]
	return ok
}

// Refresh returns the current verified set, fetching a new snapshot when
// the last successful fetch is older than the freshness window. A rate
// limit or any other lookup failure returns the previous set unchanged and
// leaves the fetch timestamp untouched. Overlapping callers share one
// in-flight fetch.
func (c *Cache) Refresh(ctx context.Context) []string {
	if c.fresh() {
		return c.current()
	}

	v, _, _ := c.sf.Do(snapshotKeyID, func() (interface{}, error) {
		// Re-check under the flight: a caller that queued behind a fetch
		// must not trigger a second one.
		if c.fresh() {
			return c.current(), nil
		}

		numbers, err := c.lookup.List(ctx)
		if err != nil {
			if errors.Is(err, ErrRateLimited) {
				log.Println("[Verify] Lookup rate limited, serving cached numbers")
			} else {
				log.Printf("[Verify] Lookup failed, serving cached numbers: %v", err)
			}
			return c.current(), nil
		}

		c.replace(numbers, time.Now())
		c.mirror(ctx)
		log.Printf("[Verify] Fetched %d verified numbers", len(numbers))
		return c.current(), nil
	})

	return v.([]string)
}

// fresh reports whether the snapshot is inside the freshness window.
func (c *Cache) fresh() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return !c.fetchedAt.IsZero() && time.Since(c.fetchedAt) < c.window
}

// current returns a sorted copy of the cached set.
func (c *Cache) current() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, 0, len(c.numbers))
	for n := range c.numbers {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// replace swaps in a whole new snapshot. The set is never partially mutated.
func (c *Cache) replace(numbers []string, fetchedAt time.Time) {
	set := make(map[string]struct{}, len(numbers))
	for _, n := range numbers {
		set[n] = struct{}{}
	}

	c.mu.Lock()
	c.numbers = set
	c.fetchedAt = fetchedAt
	c.mu.Unlock()
}

// mirror persists the snapshot to the warm store, best-effort.
func (c *Cache) mirror(ctx context.Context) {
	if c.snapshots == nil {
		return
	}

	c.mu.RLock()
	doc := snapshotDoc{Numbers: make([]string, 0, len(c.numbers)), FetchedAt: c.fetchedAt}
	for n := range c.numbers {
		doc.Numbers = append(doc.Numbers, n)
	}
	c.mu.RUnlock()
	sort.Strings(doc.Numbers)

	raw, err := json.Marshal(doc)
	if err != nil {
		return
	}

	if err := c.snapshots.Set(ctx, cache.VerifiedNumbers.Key(snapshotKeyID), string(raw), c.window); err != nil {
		log.Printf("[Verify] Failed to mirror snapshot: %v", err)
	}
}
