package form

import (
	"context"

	"github.com/meunps/platform/internal/domain"
)

// Repository defines the data access contract for campaign forms.
type Repository interface {
	// GetByCampaign returns the form for a campaign, or (nil, nil) when the
	// campaign exists but has no custom form. Returns ErrCampaignNotFound
	// when the campaign itself is missing.
	GetByCampaign(ctx context.Context, campaignID string) (*domain.CampaignForm, error)

	// Upsert creates or replaces the form for a campaign owned by userID.
	// Returns ErrCampaignNotFound when the campaign is missing or owned by
	// someone else.
	Upsert(ctx context.Context, userID string, f *domain.CampaignForm) error

	// Delete removes the custom form, reverting the campaign to the
	// built-in default.
	Delete(ctx context.Context, userID, campaignID string) error
}
