package response

import (
	"context"
	"time"

	"github.com/meunps/platform/internal/domain"
)

// Repository defines the data access contract for survey responses.
type Repository interface {
	// Submit validates the campaign inside a single transaction (exists,
	// active, within its window) and inserts the response row. Returns
	// ErrCampaignNotFound or ErrCampaignClosed without inserting anything.
	//
	// The check and the insert share one transaction so a concurrent
	// deactivation cannot slip a response into a closed campaign.
	Submit(ctx context.Context, r *domain.NpsResponse) error

	// ListByCampaign returns responses for a campaign owned by userID,
	// oldest first. Returns ErrCampaignNotFound for foreign campaigns.
	ListByCampaign(ctx context.Context, userID, campaignID string, f ListFilter) ([]domain.NpsResponse, error)

	// Delete removes a response belonging to one of the user's campaigns.
	Delete(ctx context.Context, userID, responseID string) error
}

// ListFilter narrows a response listing. A non-positive Limit returns
// every matching row; aggregation reads depend on that.
type ListFilter struct {
	From    *time.Time
	To      *time.Time
	SourceID *string
	GroupID  *string
	Limit   int
	Offset  int
}
