package dispatchgorm

import (
	"context"

	"github.com/google/uuid"
	"github.com/otpware/dispatch/internal/db"
	"github.com/otpware/dispatch/internal/domain/dispatch"
	"gorm.io/gorm"
)

// Store is a GORM-backed implementation of the dispatch.Store interface.
type Store struct {
	db *gorm.DB
}

// NewStore constructs a dispatch store using the given DB adapter.
func NewStore(d db.DB) *Store {
	return &Store{
		db: d.Conn().(*gorm.DB),
	}
}

// Append inserts a new dispatch record. Records are append-only.
func (s *Store) Append(ctx context.Context, r *dispatch.Record) error {
	return s.db.WithContext(ctx).Create(fromDomain(r)).Error
}

// All returns every record ordered by timestamp descending.
func (s *Store) All(ctx context.Context) ([]*dispatch.Record, error) {
	var models []RecordModel

	err := s.db.WithContext(ctx).
		Order("timestamp DESC").
		Find(&models).Error

	if err != nil {
		return nil, err
	}

	return toDomainMany(models), nil
}

// DeleteByIDs removes the records with the given ids in one statement and
// returns the remaining records. Unknown ids are ignored.
func (s *Store) DeleteByIDs(ctx context.Context, ids []uuid.UUID) ([]*dispatch.Record, error) {
	if len(ids) > 0 {
		err := s.db.WithContext(ctx).
			Where("id IN ?", ids).
			Delete(&RecordModel{}).Error
		if err != nil {
			return nil, err
		}
	}

	return s.All(ctx)
}

// Clear removes every record.
func (s *Store) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&RecordModel{}).Error
}

// compile-time interface check
var _ dispatch.Store = (*Store)(nil)
