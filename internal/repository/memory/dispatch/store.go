// Package dispatchmem is an in-memory dispatch.Store. It backs tests and
// credential-free local runs; the GORM store is the production path.
package dispatchmem

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/otpware/dispatch/internal/domain/dispatch"
)

// Store keeps the dispatch log as a mutex-guarded slice. Every operation
// performs its whole read-modify-write under the lock, so callers never
// observe a partially applied snapshot.
type Store struct {
	mu      sync.Mutex
	records []*dispatch.Record
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// Append adds a record to the log.
func (s *Store) Append(ctx context.Context, r *dispatch.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *r
	s.records = append(s.records, &copied)
	return nil
}

// All returns every record ordered by timestamp descending.
func (s *Store) All(ctx context.Context) ([]*dispatch.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortedLocked(), nil
}

// DeleteByIDs removes the records with the given ids and returns the
// remaining records. Unknown ids are ignored.
func (s *Store) DeleteByIDs(ctx context.Context, ids []uuid.UUID) ([]*dispatch.Record, error) {
	drop := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.records[:0]
	for _, r := range s.records {
		if _, ok := drop[r.ID]; !ok {
			kept = append(kept, r)
		}
	}
	s.records = kept

	return s.sortedLocked(), nil
}

// Clear removes every record.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}

// sortedLocked returns a timestamp-descending copy. Callers must hold mu.
func (s *Store) sortedLocked() []*dispatch.Record {
	out := make([]*dispatch.Record, len(s.records))
	copy(out, s.records)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	return out
}

// compile-time interface check
var _ dispatch.Store = (*Store)(nil)
