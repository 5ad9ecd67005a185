// Package form manages per-campaign survey form definitions: an ordered
// field list with a fixed two-field fallback for campaigns that never
// customized theirs.
package form

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/meunps/platform/internal/domain"
)

// Service implements form business logic.
type Service struct {
	repo Repository
}

// NewService creates a form service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetPublic returns the form served on the public survey page. Campaigns
// without a custom form get the built-in default.
func (s *Service) GetPublic(ctx context.Context, campaignID string) (*domain.CampaignForm, error) {
	f, err := s.repo.GetByCampaign(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return &domain.CampaignForm{
			CampaignID: campaignID,
			Fields:     domain.DefaultFormFields(),
		}, nil
	}
	sort.SliceStable(f.Fields, func(i, j int) bool { return f.Fields[i].Order < f.Fields[j].Order })
	return f, nil
}

// Save creates or replaces the campaign's form for its owner. Field ids are
// generated when absent; order follows the submitted sequence.
func (s *Service) Save(ctx context.Context, userID, campaignID string, fields []domain.FormField) (*domain.CampaignForm, error) {
	if len(fields) == 0 {
		return nil, fmt.Errorf("at least one field is required")
	}
	for i := range fields {
		if fields[i].Label == "" {
			return nil, fmt.Errorf("field %d: label is required", i)
		}
		if fields[i].ID == "" {
			fields[i].ID = uuid.New().String()
		}
		fields[i].Order = i
	}

	f := &domain.CampaignForm{
		ID:         uuid.New().String(),
		CampaignID: campaignID,
		Fields:     fields,
	}
	if err := s.repo.Upsert(ctx, userID, f); err != nil {
		return nil, err
	}
	return f, nil
}

// Delete reverts a campaign to the default form.
func (s *Service) Delete(ctx context.Context, userID, campaignID string) error {
	return s.repo.Delete(ctx, userID, campaignID)
}
