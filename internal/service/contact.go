package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/otpware/dispatch/internal/domain/contact"
)

// ContactService exposes the read operations the HTTP layer needs.
type ContactService interface {
	GetAll(ctx context.Context) ([]*contact.Contact, error)
	GetByID(ctx context.Context, id uuid.UUID) (*contact.Contact, error)
}

type contactService struct {
	repo contact.Repository
}

// NewContactService creates a contact service over the given repository.
func NewContactService(repo contact.Repository) ContactService {
	return &contactService{repo: repo}
}

func (s *contactService) GetAll(ctx context.Context) ([]*contact.Contact, error) {
	return s.repo.GetAll(ctx)
}

func (s *contactService) GetByID(ctx context.Context, id uuid.UUID) (*contact.Contact, error) {
	return s.repo.GetByID(ctx, id)
}
