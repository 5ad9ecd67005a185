package admin

import (
	"context"

	"github.com/meunps/platform/internal/domain"
)

// Repository defines the data access contract for the admin panel.
type Repository interface {
	// ListUsers returns every account, newest first.
	ListUsers(ctx context.Context) ([]domain.User, error)

	// Deactivate flags the user AND flips active=false on all their
	// campaigns, in one transaction. Returns ErrUserNotFound when the id
	// is unknown.
	Deactivate(ctx context.Context, userID string) error

	// Reactivate clears the flag only; campaigns stay inactive.
	Reactivate(ctx context.Context, userID string) error

	// DeleteUser hard-deletes the account; foreign keys cascade to every
	// owned row.
	DeleteUser(ctx context.Context, userID string) error

	// AdminPermissions returns the admin grant for a user; ok is false
	// when no user_admins row exists.
	AdminPermissions(ctx context.Context, userID string) (domain.AdminPermissions, bool, error)
}
