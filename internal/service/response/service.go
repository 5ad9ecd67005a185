// Package response implements public NPS survey submission and owner-scoped
// response access. Submissions are immutable once recorded.
package response

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/meunps/platform/internal/domain"
)

// Service implements response business logic.
type Service struct {
	repo Repository
}

// NewService creates a response service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// SubmitInput is the public submission payload.
type SubmitInput struct {
	CampaignID    string         `json:"campaign_id"`
	Score         int            `json:"score"`
	Feedback      string         `json:"feedback"`
	SourceID      *string        `json:"source_id"`
	SituationID   *string        `json:"situation_id"`
	GroupID       *string        `json:"group_id"`
	FormResponses map[string]any `json:"form_responses"`
}

// Submit records a public survey response. Score bounds are checked before
// touching the database; campaign state is checked transactionally with the
// insert.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (*domain.NpsResponse, error) {
	if !domain.ValidScore(input.Score) {
		return nil, ErrInvalidScore
	}
	if input.CampaignID == "" {
		return nil, ErrCampaignNotFound
	}

	r := &domain.NpsResponse{
		ID:            uuid.New().String(),
		CampaignID:    input.CampaignID,
		Score:         input.Score,
		Feedback:      input.Feedback,
		SourceID:      input.SourceID,
		SituationID:   input.SituationID,
		GroupID:       input.GroupID,
		FormResponses: input.FormResponses,
		CreatedAt:     time.Now(),
	}
	if err := s.repo.Submit(ctx, r); err != nil {
		return nil, err
	}

	log.Printf("[response.Service] Campaign %s: recorded score %d", r.CampaignID, r.Score)
	return r, nil
}

// ListByCampaign returns a campaign's responses for its owner.
func (s *Service) ListByCampaign(ctx context.Context, userID, campaignID string, f ListFilter) ([]domain.NpsResponse, error) {
	return s.repo.ListByCampaign(ctx, userID, campaignID, f)
}

// Delete removes a response from one of the user's campaigns.
func (s *Service) Delete(ctx context.Context, userID, responseID string) error {
	return s.repo.Delete(ctx, userID, responseID)
}
