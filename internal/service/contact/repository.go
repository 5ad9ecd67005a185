package contact

import (
	"context"

	"github.com/meunps/platform/internal/domain"
)

// Repository defines the data access contract for CRM contacts.
type Repository interface {
	List(ctx context.Context, userID string, f ListFilter) ([]domain.Contact, int, error)
	Get(ctx context.Context, userID, id string) (*domain.Contact, error)
	Create(ctx context.Context, c *domain.Contact) error
	Update(ctx context.Context, c *domain.Contact) error
	Delete(ctx context.Context, userID, id string) error
}

// ListFilter controls pagination and search for contact lists.
type ListFilter struct {
	Search  string
	GroupID string
	Tag     string
	Limit   int
	Offset  int
}
