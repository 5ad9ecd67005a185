// Package taxonomy manages the per-user classification entities (sources,
// situations and groups) behind /api/entities. The three tables share one
// shape, so a single service parameterized by kind covers them all.
package taxonomy

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meunps/platform/internal/domain"
)

// Service implements taxonomy business logic.
type Service struct {
	repo Repository
}

// NewService creates a taxonomy service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all entries of one kind for the user.
func (s *Service) List(ctx context.Context, kind domain.TaxonomyKind, userID string) ([]domain.Taxonomy, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	return s.repo.List(ctx, kind, userID)
}

// Get returns a single entry owned by the user.
func (s *Service) Get(ctx context.Context, kind domain.TaxonomyKind, userID, id string) (*domain.Taxonomy, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	return s.repo.Get(ctx, kind, userID, id)
}

// CreateInput holds the fields for a new taxonomy entry.
type CreateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

// Create persists a new entry stamped with the authenticated user's id.
func (s *Service) Create(ctx context.Context, kind domain.TaxonomyKind, userID string, input CreateInput) (*domain.Taxonomy, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	t := &domain.Taxonomy{
		ID:          uuid.New().String(),
		UserID:      userID,
		Kind:        kind,
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Update replaces the mutable fields of an entry owned by the user.
func (s *Service) Update(ctx context.Context, kind domain.TaxonomyKind, userID, id string, input CreateInput) (*domain.Taxonomy, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	t := &domain.Taxonomy{
		ID:          id,
		UserID:      userID,
		Kind:        kind,
		Name:        input.Name,
		Description: input.Description,
		Color:       input.Color,
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, kind, userID, id)
}

// Delete removes an entry owned by the user. Responses referencing it keep
// their row with the link nulled out by the schema.
func (s *Service) Delete(ctx context.Context, kind domain.TaxonomyKind, userID, id string) error {
	if !kind.Valid() {
		return ErrUnknownKind
	}
	return s.repo.Delete(ctx, kind, userID, id)
}
