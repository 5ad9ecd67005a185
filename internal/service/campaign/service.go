package campaign

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/meunps/platform/internal/domain"
)

// Service implements campaign business logic.
type Service struct {
	repo Repository
}

// NewService creates a campaign service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns a single campaign owned by userID.
func (s *Service) Get(ctx context.Context, userID, id string) (*domain.Campaign, error) {
	return s.repo.Get(ctx, userID, id)
}

// GetPublic returns a campaign for the public survey page.
func (s *Service) GetPublic(ctx context.Context, id string) (*domain.Campaign, error) {
	return s.repo.GetPublic(ctx, id)
}

// List returns campaigns matching the filter.
func (s *Service) List(ctx context.Context, userID string, f ListFilter) ([]domain.Campaign, int, error) {
	return s.repo.List(ctx, userID, f)
}

// CreateInput holds the fields for creating a new campaign.
type CreateInput struct {
	Name               string                      `json:"name"`
	Description        string                      `json:"description"`
	StartDate          time.Time                   `json:"start_date"`
	EndDate            *time.Time                  `json:"end_date"`
	DefaultSourceID    *string                     `json:"default_source_id"`
	DefaultSituationID *string                     `json:"default_situation_id"`
	DefaultGroupID     *string                     `json:"default_group_id"`
	Customization      *domain.SurveyCustomization `json:"survey_customization"`
	Automation         *domain.AutomationConfig    `json:"automation"`
}

// Create validates and persists a new active campaign. The user id always
// comes from the authenticated identity, never from client input. Omitted
// JSON blobs receive the documented defaults.
func (s *Service) Create(ctx context.Context, userID string, input CreateInput) (*domain.Campaign, error) {
	if input.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if input.StartDate.IsZero() {
		input.StartDate = time.Now()
	}
	if input.EndDate != nil && input.EndDate.Before(input.StartDate) {
		return nil, fmt.Errorf("end_date must be after start_date")
	}

	c := &domain.Campaign{
		ID:                 uuid.New().String(),
		UserID:             userID,
		Name:               input.Name,
		Description:        input.Description,
		StartDate:          input.StartDate,
		EndDate:            input.EndDate,
		Active:             true,
		DefaultSourceID:    input.DefaultSourceID,
		DefaultSituationID: input.DefaultSituationID,
		DefaultGroupID:     input.DefaultGroupID,
		Customization:      domain.DefaultSurveyCustomization(),
		Automation:         domain.DefaultAutomationConfig(),
	}
	if input.Customization != nil {
		c.Customization = *input.Customization
	}
	if input.Automation != nil {
		c.Automation = *input.Automation
	}

	id, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, err
	}
	c.ID = id
	return c, nil
}

// Update modifies mutable campaign fields for the owner.
func (s *Service) Update(ctx context.Context, userID, id string, u UpdateFields) (*domain.Campaign, error) {
	if u.EndDate != nil && *u.EndDate != nil && u.StartDate != nil && (*u.EndDate).Before(*u.StartDate) {
		return nil, fmt.Errorf("end_date must be after start_date")
	}
	if err := s.repo.Update(ctx, userID, id, u); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID, id)
}

// Delete removes a campaign and everything hanging off it.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	return s.repo.Delete(ctx, userID, id)
}
