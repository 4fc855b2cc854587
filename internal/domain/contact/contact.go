// Package contact holds the read-mostly contact entity the dispatcher
// sends to. Contacts are managed elsewhere; this core only reads them.
package contact

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a contact id does not exist.
var ErrNotFound = errors.New("contact not found")

// ErrEmptyPhoneNumber is returned when a contact is created without a number.
var ErrEmptyPhoneNumber = errors.New("contact phone number is required")

// Contact is an operator-entered address book entry. PhoneNumber is kept
// raw, exactly as entered; normalization happens at dispatch time.
type Contact struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	PhoneNumber string
	CreatedAt   time.Time
}

// New constructs a contact and enforces the one domain rule we have.
func New(firstName, lastName, phoneNumber string) (*Contact, error) {
	phoneNumber = strings.TrimSpace(phoneNumber)
	if phoneNumber == "" {
		return nil, ErrEmptyPhoneNumber
	}

	return &Contact{
		ID:          uuid.New(),
		FirstName:   strings.TrimSpace(firstName),
		LastName:    strings.TrimSpace(lastName),
		PhoneNumber: phoneNumber,
		CreatedAt:   time.Now(),
	}, nil
}

// FullName is the display name recorded on dispatch records.
func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Repository defines the read operations the dispatcher and the contact
// listing need, plus Save for seeding.
type Repository interface {
	Save(ctx context.Context, c *Contact) error
	GetAll(ctx context.Context) ([]*Contact, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Contact, error)
}
