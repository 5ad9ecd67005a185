// Package account manages the lazily created singleton-per-user records:
// the profile and the app configuration.
//
// Get-or-create is an explicit idempotent operation: read, insert defaults
// on miss, and re-read when a concurrent first access wins the insert race
// (the UNIQUE(user_id) constraint makes the race safe).
package account

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/meunps/platform/internal/domain"
)

// Service implements account-settings business logic.
type Service struct {
	repo Repository
}

// NewService creates an account service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetOrCreateProfile returns the user's profile, materializing it with
// default preferences on first access.
func (s *Service) GetOrCreateProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	p, err := s.repo.GetProfile(ctx, userID)
	if err == nil {
		return p, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	fresh := &domain.UserProfile{
		ID:          uuid.New().String(),
		UserID:      userID,
		Preferences: domain.DefaultPreferences(),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	switch err := s.repo.InsertProfile(ctx, fresh); err {
	case nil:
		return fresh, nil
	case ErrConflict:
		// Lost the first-access race; the winner's row is authoritative.
		return s.repo.GetProfile(ctx, userID)
	default:
		return nil, err
	}
}

// ProfileInput holds the mutable profile fields.
type ProfileInput struct {
	Company     string              `json:"company"`
	Phone       string              `json:"phone"`
	AvatarURL   string              `json:"avatar_url"`
	Preferences *domain.Preferences `json:"preferences"`
}

// UpdateProfile replaces the profile's mutable fields, creating the row
// first if this user never touched it.
func (s *Service) UpdateProfile(ctx context.Context, userID string, input ProfileInput) (*domain.UserProfile, error) {
	p, err := s.GetOrCreateProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	p.Company = input.Company
	p.Phone = input.Phone
	p.AvatarURL = input.AvatarURL
	if input.Preferences != nil {
		p.Preferences = *input.Preferences
	}
	if err := s.repo.UpdateProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetOrCreateConfig returns the user's app config, materializing it with
// default integrations on first access.
func (s *Service) GetOrCreateConfig(ctx context.Context, userID string) (*domain.AppConfig, error) {
	c, err := s.repo.GetConfig(ctx, userID)
	if err == nil {
		return c, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	fresh := &domain.AppConfig{
		ID:           uuid.New().String(),
		UserID:       userID,
		Integrations: domain.DefaultIntegrations(),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	switch err := s.repo.InsertConfig(ctx, fresh); err {
	case nil:
		return fresh, nil
	case ErrConflict:
		return s.repo.GetConfig(ctx, userID)
	default:
		return nil, err
	}
}

// UpdateConfig replaces the integrations blob.
func (s *Service) UpdateConfig(ctx context.Context, userID string, integrations domain.Integrations) (*domain.AppConfig, error) {
	c, err := s.GetOrCreateConfig(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.Integrations = integrations
	if err := s.repo.UpdateConfig(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
