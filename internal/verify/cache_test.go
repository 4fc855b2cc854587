package verify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// fakeLookup is a scriptable LookupClient that counts calls.
type fakeLookup struct {
	mu      sync.Mutex
	calls   int32
	numbers []string
	err     error
	block   chan struct{} // when set, List blocks until closed
}

func (f *fakeLookup) List(ctx context.Context) ([]string, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]string(nil), f.numbers...), nil
}

func (f *fakeLookup) set(numbers []string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.numbers = numbers
	f.err = err
}

func (f *fakeLookup) Calls() int32 { return atomic.LoadInt32(&f.calls) }

// fakeStore is an in-memory cache.Cache for warm snapshot tests.
type fakeStore struct {
	mu     sync.Mutex
	values map[string]string
}

func newFakeStore() *fakeStore { return &fakeStore{values: map[string]string{}} }

func (s *fakeStore) Ping(ctx context.Context) error { return nil }

func (s *fakeStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *fakeStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return "", fmt.Errorf("key %q not found", key)
	}
	return v, nil
}

func (s *fakeStore) Del(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

func TestCache_RefreshSkippedInsideWindow(t *testing.T) {
	lookup := &fakeLookup{numbers: []string{"+919876543210"}}
	c := NewCache(lookup, nil, 5*time.Minute)

	first := c.Refresh(context.Background())
	second := c.Refresh(context.Background())

	if got := lookup.Calls(); got != 1 {
		t.Fatalf("expected exactly one fetch, got %d", got)
	}
	if len(first) != 1 || len(second) != 1 || second[0] != "+919876543210" {
		t.Fatalf("unexpected snapshots: first=%v second=%v", first, second)
	}
}

func TestCache_RateLimitKeepsSetAndTimestamp(t *testing.T) {
	lookup := &fakeLookup{numbers: []string{"+919876543210"}}
	c := NewCache(lookup, nil, 5*time.Minute)

	c.Refresh(context.Background())

	// Force staleness, then make the lookup answer 429.
	c.mu.Lock()
	staleAt := time.Now().Add(-10 * time.Minute)
	c.fetchedAt = staleAt
	c.mu.Unlock()
	lookup.set(nil, ErrRateLimited)

	got := c.Refresh(context.Background())
	if len(got) != 1 || got[0] != "+919876543210" {
		t.Fatalf("expected previous set on rate limit, got %v", got)
	}

	// Timestamp untouched: the very next refresh must try again.
	c.mu.RLock()
	fetchedAt := c.fetchedAt
	c.mu.RUnlock()
	if !fetchedAt.Equal(staleAt) {
		t.Fatalf("rate limit must not touch fetchedAt, got %s", fetchedAt)
	}

	before := lookup.Calls()
	c.Refresh(context.Background())
	if lookup.Calls() != before+1 {
		t.Fatal("expected an immediate retry after rate limit")
	}
}

func TestCache_LookupFailureFallsBack(t *testing.T) {
	lookup := &fakeLookup{err: errors.New("boom")}
	c := NewCache(lookup, nil, 5*time.Minute)

	if got := c.Refresh(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty fallback set, got %v", got)
	}

	// With a previous snapshot, failures serve the stale set.
	lookup.set([]string{"+919876543210"}, nil)
	c.mu.Lock()
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
	c.Refresh(context.Background())

	lookup.set(nil, errors.New("boom"))
	c.mu.Lock()
	c.fetchedAt = time.Now().Add(-10 * time.Minute)
	c.mu.Unlock()

	if got := c.Refresh(context.Background()); len(got) != 1 {
		t.Fatalf("expected stale set on failure, got %v", got)
	}
}

func TestCache_IsEligible(t *testing.T) {
	lookup := &fakeLookup{numbers: []string{"+919876543210", "+15005550006"}}
	c := NewCache(lookup, nil, 5*time.Minute)

	if !c.IsEligible(context.Background(), "+919876543210") {
		t.Fatal("expected number to be eligible")
	}
	if c.IsEligible(context.Background(), "+919999999999") {
		t.Fatal("expected unknown number to be ineligible")
	}
	if got := lookup.Calls(); got != 1 {
		t.Fatalf("eligibility checks inside the window must share one fetch, got %d", got)
	}
}

func TestCache_SingleFlight(t *testing.T) {
	lookup := &fakeLookup{numbers: []string{"+919876543210"}, block: make(chan struct{})}
	c := NewCache(lookup, nil, 5*time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Refresh(context.Background())
		}()
	}

	// Give the goroutines a moment to pile into the flight, then release it.
	time.Sleep(20 * time.Millisecond)
	close(lookup.block)
	wg.Wait()

	if got := lookup.Calls(); got != 1 {
		t.Fatalf("expected one shared fetch, got %d", got)
	}
}

func TestCache_MirrorAndWarmStart(t *testing.T) {
	store := newFakeStore()
	lookup := &fakeLookup{numbers: []string{"+919876543210"}}

	c := NewCache(lookup, store, 5*time.Minute)
	c.Refresh(context.Background())

	raw, err := store.Get(context.Background(), "verified_numbers:snapshot")
	if err != nil {
		t.Fatalf("expected mirrored snapshot: %v", err)
	}
	var doc snapshotDoc
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatalf("bad snapshot JSON: %v", err)
	}
	if len(doc.Numbers) != 1 || doc.FetchedAt.IsZero() {
		t.Fatalf("unexpected snapshot doc: %+v", doc)
	}

	// A fresh cache over the same store warm-starts without a fetch.
	coldLookup := &fakeLookup{}
	warm := NewCache(coldLookup, store, 5*time.Minute)
	warm.WarmStart(context.Background())

	if !warm.IsEligible(context.Background(), "+919876543210") {
		t.Fatal("expected warm-started cache to know the number")
	}
	if coldLookup.Calls() != 0 {
		t.Fatalf("warm start must not fetch, got %d calls", coldLookup.Calls())
	}
}
