package dispatchmem

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/otpware/dispatch/internal/domain/dispatch"
)

func record(t *testing.T, name string, ts time.Time) *dispatch.Record {
	t.Helper()

	r, err := dispatch.NewRecord(name, "09876543210", "hello")
	if err != nil {
		t.Fatalf("NewRecord: %v", err)
	}
	r.Timestamp = ts
	r.MarkSent("SM" + name)
	return r
}

func TestStore_AllSortedDescending(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	base := time.Now()

	oldest := record(t, "a", base.Add(-2*time.Hour))
	middle := record(t, "b", base.Add(-time.Hour))
	newest := record(t, "c", base)

	for _, r := range []*dispatch.Record{middle, oldest, newest} {
		if err := s.Append(ctx, r); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	all, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 records, got %d", len(all))
	}
	if all[0].ID != newest.ID || all[1].ID != middle.ID || all[2].ID != oldest.ID {
		t.Fatal("records not ordered by timestamp descending")
	}
}

func TestStore_DeleteByIDs(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	base := time.Now()

	records := make([]*dispatch.Record, 4)
	for i := range records {
		records[i] = record(t, string(rune('a'+i)), base.Add(time.Duration(i)*time.Minute))
		if err := s.Append(ctx, records[i]); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	remaining, err := s.DeleteByIDs(ctx, []uuid.UUID{records[1].ID, records[2].ID})
	if err != nil {
		t.Fatalf("DeleteByIDs: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("expected 2 remaining records, got %d", len(remaining))
	}
	for _, r := range remaining {
		if r.ID == records[1].ID || r.ID == records[2].ID {
			t.Fatalf("deleted record %s still present", r.ID)
		}
	}
	// Relative order of survivors preserved (descending).
	if remaining[0].ID != records[3].ID || remaining[1].ID != records[0].ID {
		t.Fatal("survivor order changed after delete")
	}
}

func TestStore_DeleteUnknownIDsIsNoop(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	r := record(t, "a", time.Now())
	if err := s.Append(ctx, r); err != nil {
		t.Fatalf("Append: %v", err)
	}

	remaining, err := s.DeleteByIDs(ctx, []uuid.UUID{uuid.New()})
	if err != nil {
		t.Fatalf("DeleteByIDs: %v", err)
	}
	if len(remaining) != 1 {
		t.Fatalf("expected 1 remaining record, got %d", len(remaining))
	}
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := s.Append(ctx, record(t, "x", time.Now())); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	if err := s.Clear(ctx); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	all, err := s.All(ctx)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected empty log after Clear, got %d records", len(all))
	}
}

func TestStore_AppendCopiesRecord(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	r := record(t, "a", time.Now())
	if err := s.Append(ctx, r); err != nil {
		t.Fatalf("Append: %v", err)
	}

	// Mutating the caller's record must not reach the stored snapshot.
	r.Error = "mutated"

	all, _ := s.All(ctx)
	if all[0].Error == "mutated" {
		t.Fatal("store shares memory with caller's record")
	}
}
