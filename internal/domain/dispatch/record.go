// Package dispatch holds the domain model and invariants for dispatch records:
// the durable log entries written for every SMS send attempt.
package dispatch

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusSent               Status = "sent"
	StatusVerificationNeeded Status = "verification_needed"
	StatusLimitExceeded      Status = "limit_exceeded"
	StatusFailed             Status = "failed"
)

var (
	// ErrEmptyBody is returned when the message body is empty or whitespace.
	ErrEmptyBody = errors.New("message body is required")
	// ErrEmptyRecipient is returned when the contact has no phone number.
	ErrEmptyRecipient = errors.New("recipient phone number is required")
)

// Record is the log entry for one send attempt, regardless of outcome.
// Exactly one Record is created per send invocation; once classified via
// one of the Mark* methods it is never mutated again.
type Record struct {
	ID                uuid.UUID
	ContactName       string
	PhoneNumber       string // the contact's original, unnormalized number
	Body              string
	Timestamp         time.Time
	Status            Status
	ProviderMessageID string
	Error             string
	VerificationSteps []string
}

// NewRecord constructs a record for a send attempt. The id is a UUIDv7 so
// ids are unique and time-ordered within the process.
func NewRecord(contactName, rawNumber, body string) (*Record, error) {
	if strings.TrimSpace(rawNumber) == "" {
		return nil, ErrEmptyRecipient
	}
	if strings.TrimSpace(body) == "" {
		return nil, ErrEmptyBody
	}

	return &Record{
		ID:          uuid.Must(uuid.NewV7()),
		ContactName: contactName,
		PhoneNumber: rawNumber,
		Body:        body,
		Timestamp:   time.Now(),
	}, nil
}

// MarkSent records a successful provider accept with its message SID.
func (r *Record) MarkSent(providerMessageID string) {
	r.Status = StatusSent
	r.ProviderMessageID = providerMessageID
}

// MarkVerificationNeeded records that the destination is not cleared to
// receive messages and attaches the remediation checklist for the number.
func (r *Record) MarkVerificationNeeded(e164 string, reason string) {
	r.Status = StatusVerificationNeeded
	r.Error = reason
	r.VerificationSteps = VerificationSteps(e164)
}

// MarkLimitExceeded records a provider daily-quota rejection.
func (r *Record) MarkLimitExceeded(reason string) {
	r.Status = StatusLimitExceeded
	r.Error = reason
}

// MarkFailed records any other failure with the best available diagnostic.
func (r *Record) MarkFailed(reason string) {
	r.Status = StatusFailed
	r.Error = reason
}

// VerificationSteps is the fixed remediation sequence shown to the operator
// when a number needs caller-ID verification at the provider.
func VerificationSteps(e164 string) []string {
	return []string{
		"Log in to your Twilio console",
		`Navigate to "Verified Caller IDs"`,
		fmt.Sprintf("Add %s to your verified numbers", e164),
	}
}
