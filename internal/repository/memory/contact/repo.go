// Package contactmem is an in-memory contact.Repository for tests and
// credential-free local runs.
package contactmem

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/otpware/dispatch/internal/domain/contact"
)

// Repository keeps contacts in a mutex-guarded map.
type Repository struct {
	mu       sync.Mutex
	contacts map[uuid.UUID]*contact.Contact
}

// NewRepository creates an empty in-memory contact repository.
func NewRepository() *Repository {
	return &Repository{contacts: map[uuid.UUID]*contact.Contact{}}
}

// Save stores a contact.
func (r *Repository) Save(ctx context.Context, c *contact.Contact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *c
	r.contacts[c.ID] = &copied
	return nil
}

// GetAll returns every contact ordered by first name.
func (r *Repository) GetAll(ctx context.Context) ([]*contact.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*contact.Contact, 0, len(r.contacts))
	for _, c := range r.contacts {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].FirstName != out[j].FirstName {
			return out[i].FirstName < out[j].FirstName
		}
		return out[i].LastName < out[j].LastName
	})
	return out, nil
}

// GetByID returns the contact with the given id or contact.ErrNotFound.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*contact.Contact, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.contacts[id]
	if !ok {
		return nil, contact.ErrNotFound
	}
	return c, nil
}

// compile-time interface check
var _ contact.Repository = (*Repository)(nil)
