// Package contact manages the per-user CRM records.
//
// GroupIDs and Tags are free-form JSON arrays. Membership is intentionally
// NOT validated against group rows; that matches the shipped product and is
// flagged as a pending product decision rather than silently fixed here.
package contact

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meunps/platform/internal/domain"
)

// Service implements contact business logic.
type Service struct {
	repo Repository
}

// NewService creates a contact service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns the user's contacts matching the filter.
func (s *Service) List(ctx context.Context, userID string, f ListFilter) ([]domain.Contact, int, error) {
	return s.repo.List(ctx, userID, f)
}

// Get returns a single contact owned by the user.
func (s *Service) Get(ctx context.Context, userID, id string) (*domain.Contact, error) {
	return s.repo.Get(ctx, userID, id)
}

// CreateInput holds the fields for a new contact.
type CreateInput struct {
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	GroupIDs []string `json:"group_ids"`
	Tags     []string `json:"tags"`
	Notes    string   `json:"notes"`
}

// Create persists a new contact stamped with the authenticated user's id.
func (s *Service) Create(ctx context.Context, userID string, input CreateInput) (*domain.Contact, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	c := &domain.Contact{
		ID:        uuid.New().String(),
		UserID:    userID,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		GroupIDs:  input.GroupIDs,
		Tags:      input.Tags,
		Notes:     input.Notes,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if c.GroupIDs == nil {
		c.GroupIDs = []string{}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Update replaces the mutable fields of a contact owned by the user.
func (s *Service) Update(ctx context.Context, userID, id string, input CreateInput) (*domain.Contact, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	c := &domain.Contact{
		ID:       id,
		UserID:   userID,
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		GroupIDs: input.GroupIDs,
		Tags:     input.Tags,
		Notes:    input.Notes,
	}
	if c.GroupIDs == nil {
		c.GroupIDs = []string{}
	}
	if c.Tags == nil {
		c.Tags = []string{}
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID, id)
}

// Delete removes a contact owned by the user.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
