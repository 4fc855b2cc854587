package dispatch

import (
	"context"

	"github.com/google/uuid"
)

// Store defines the persistence operations for the dispatch log.
//
// It is implemented by infrastructure layers (GORM, in-memory, etc.)
// while the service layer depends only on this interface. Each operation
// is a single atomic read-modify-write of the log from the caller's view.
type Store interface {
	// Append persists a new record. Records are append-only: nothing
	// updates a record after it has been written.
	Append(ctx context.Context, r *Record) error

	// All returns every record ordered by timestamp descending.
	All(ctx context.Context) ([]*Record, error)

	// DeleteByIDs removes the records with the given ids and returns the
	// remaining records in timestamp-descending order. Unknown ids are
	// ignored.
	DeleteByIDs(ctx context.Context, ids []uuid.UUID) ([]*Record, error)

	// Clear removes every record.
	Clear(ctx context.Context) error
}
