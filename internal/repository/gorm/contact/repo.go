package contactgorm

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/otpware/dispatch/internal/db"
	"github.com/otpware/dispatch/internal/domain/contact"
	"gorm.io/gorm"
)

// Repository is a GORM-backed implementation of the contact.Repository interface.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a contact repository using the given DB adapter.
func NewRepository(d db.DB) *Repository {
	return &Repository{
		db: d.Conn().(*gorm.DB),
	}
}

// Save inserts a new contact record.
func (r *Repository) Save(ctx context.Context, c *contact.Contact) error {
	return r.db.WithContext(ctx).Create(fromDomain(c)).Error
}

// GetAll returns every contact ordered by first name.
func (r *Repository) GetAll(ctx context.Context) ([]*contact.Contact, error) {
	var models []ContactModel

	err := r.db.WithContext(ctx).
		Order("first_name ASC, last_name ASC").
		Find(&models).Error

	if err != nil {
		return nil, err
	}

	out := make([]*contact.Contact, len(models))
	for i := range models {
		out[i] = toDomain(&models[i])
	}
	return out, nil
}

// GetByID returns the contact with the given id or contact.ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*contact.Contact, error) {
	var model ContactModel

	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, contact.ErrNotFound
		}
		return nil, err
	}

	return toDomain(&model), nil
}

// toDomain maps a GORM ContactModel to a domain-level Contact.
func toDomain(m *ContactModel) *contact.Contact {
	return &contact.Contact{
		ID:          m.ID,
		FirstName:   m.FirstName,
		LastName:    m.LastName,
		PhoneNumber: m.PhoneNumber,
		CreatedAt:   m.CreatedAt,
	}
}

// fromDomain maps a domain-level Contact to a GORM ContactModel.
func fromDomain(c *contact.Contact) *ContactModel {
	return &ContactModel{
		ID:          c.ID,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		PhoneNumber: c.PhoneNumber,
		CreatedAt:   c.CreatedAt,
	}
}

// compile-time interface check
var _ contact.Repository = (*Repository)(nil)
