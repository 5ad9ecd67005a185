package campaign

import (
	"context"
	"time"

	"github.com/meunps/platform/internal/domain"
)

// Repository defines the data access contract for campaigns.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Get returns a single campaign owned by userID. Returns ErrNotFound
	// when it doesn't exist or belongs to someone else.
	Get(ctx context.Context, userID, id string) (*domain.Campaign, error)

	// GetPublic returns a campaign by id regardless of owner, for the
	// public survey landing page.
	GetPublic(ctx context.Context, id string) (*domain.Campaign, error)

	// List returns the user's campaigns ordered by created_at DESC.
	List(ctx context.Context, userID string, f ListFilter) ([]domain.Campaign, int, error)

	// Create inserts a new campaign and returns its ID.
	Create(ctx context.Context, c *domain.Campaign) (string, error)

	// Update modifies a campaign. Only non-nil fields are applied.
	Update(ctx context.Context, userID, id string, u UpdateFields) error

	// Delete removes a campaign; responses and the form cascade away.
	Delete(ctx context.Context, userID, id string) error
}

// ListFilter controls pagination and filtering for campaign lists.
type ListFilter struct {
	Active *bool
	Limit  int
	Offset int
}

// UpdateFields holds the mutable fields for a campaign update.
// Nil fields are not applied.
type UpdateFields struct {
	Name               *string
	Description        *string
	StartDate          *time.Time
	EndDate            **time.Time
	Active             *bool
	DefaultSourceID    **string
	DefaultSituationID **string
	DefaultGroupID     **string
	Customization      *domain.SurveyCustomization
	Automation         *domain.AutomationConfig
}
