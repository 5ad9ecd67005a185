package user

import (
	"context"

	"github.com/meunps/platform/internal/domain"
)

// Repository defines the data access contract for user accounts.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Create inserts a new user. Returns ErrEmailTaken when the email is
	// already registered.
	Create(ctx context.Context, u *domain.User) error

	// ByEmail returns the user with the given email. Returns ErrNotFound
	// if no such account exists.
	ByEmail(ctx context.Context, email string) (*domain.User, error)

	// ByID returns the user with the given id. Returns ErrNotFound if no
	// such account exists.
	ByID(ctx context.Context, id string) (*domain.User, error)
}
