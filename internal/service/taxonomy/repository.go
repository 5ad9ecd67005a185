package taxonomy

import (
	"context"

	"github.com/meunps/platform/internal/domain"
)

// Repository defines the data access contract for the three per-user
// classification tables (sources, situations, groups). One implementation
// serves all kinds; the kind selects the table.
type Repository interface {
	List(ctx context.Context, kind domain.TaxonomyKind, userID string) ([]domain.Taxonomy, error)
	Get(ctx context.Context, kind domain.TaxonomyKind, userID, id string) (*domain.Taxonomy, error)
	Create(ctx context.Context, t *domain.Taxonomy) error
	Update(ctx context.Context, t *domain.Taxonomy) error
	Delete(ctx context.Context, kind domain.TaxonomyKind, userID, id string) error
}
