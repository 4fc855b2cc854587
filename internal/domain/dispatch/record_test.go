package dispatch

import (
	"errors"
	"strings"
	"testing"
)

func TestNewRecord_Validation(t *testing.T) {
	if _, err := NewRecord("Asha Rao", "", "hello"); !errors.Is(err, ErrEmptyRecipient) {
		t.Fatalf("expected ErrEmptyRecipient, got %v", err)
	}
	if _, err := NewRecord("Asha Rao", "09876543210", "  "); !errors.Is(err, ErrEmptyBody) {
		t.Fatalf("expected ErrEmptyBody, got %v", err)
	}
}

func TestNewRecord_IDsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		r, err := NewRecord("Asha Rao", "09876543210", "hello")
		if err != nil {
			t.Fatalf("NewRecord: %v", err)
		}
		id := r.ID.String()
		if seen[id] {
			t.Fatalf("duplicate record id %s", id)
		}
		seen[id] = true
	}
}

func TestRecord_MarkTransitions(t *testing.T) {
	r, _ := NewRecord("Asha Rao", "09876543210", "hello")

	r.MarkSent("SM123")
	if r.Status != StatusSent || r.ProviderMessageID != "SM123" || r.Error != "" {
		t.Fatalf("unexpected sent record: %+v", r)
	}

	r, _ = NewRecord("Asha Rao", "09876543210", "hello")
	r.MarkVerificationNeeded("+919876543210", "+919876543210 is not verified in Twilio")
	if r.Status != StatusVerificationNeeded {
		t.Fatalf("expected verification_needed, got %s", r.Status)
	}
	if len(r.VerificationSteps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(r.VerificationSteps))
	}

	r, _ = NewRecord("Asha Rao", "09876543210", "hello")
	r.MarkLimitExceeded("Daily limit exceeded. Resets at 12:00 AM PT.")
	if r.Status != StatusLimitExceeded || r.Error == "" {
		t.Fatalf("unexpected limit record: %+v", r)
	}

	r, _ = NewRecord("Asha Rao", "09876543210", "hello")
	r.MarkFailed("network error")
	if r.Status != StatusFailed || r.Error != "network error" {
		t.Fatalf("unexpected failed record: %+v", r)
	}
}

func TestVerificationSteps(t *testing.T) {
	steps := VerificationSteps("+919876543210")
	if len(steps) != 3 {
		t.Fatalf("expected 3 steps, got %d", len(steps))
	}
	if !strings.Contains(steps[0], "Twilio console") {
		t.Fatalf("unexpected first step %q", steps[0])
	}
	if !strings.Contains(steps[2], "+919876543210") {
		t.Fatalf("last step must name the number, got %q", steps[2])
	}
}
