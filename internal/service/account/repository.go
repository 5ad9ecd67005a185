package account

import (
	"context"

	"github.com/meunps/platform/internal/domain"
)

// Repository defines the data access contract for the singleton-per-user
// profile and app-config rows. Both tables carry a UNIQUE(user_id)
// constraint; Insert* return ErrConflict when a concurrent first access
// already created the row.
type Repository interface {
	GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error)
	InsertProfile(ctx context.Context, p *domain.UserProfile) error
	UpdateProfile(ctx context.Context, p *domain.UserProfile) error

	GetConfig(ctx context.Context, userID string) (*domain.AppConfig, error)
	InsertConfig(ctx context.Context, c *domain.AppConfig) error
	UpdateConfig(ctx context.Context, c *domain.AppConfig) error
}
