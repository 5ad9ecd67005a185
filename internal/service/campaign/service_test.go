package campaign_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/service/campaign"
)

// memRepo is an in-memory campaign repository for unit testing.
type memRepo struct {
	mu        sync.Mutex
	campaigns map[string]*domain.Campaign // keyed by id
}

func newMemRepo() *memRepo {
	return &memRepo{campaigns: make(map[string]*domain.Campaign)}
}

func (m *memRepo) Get(_ context.Context, userID, id string) (*domain.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[id]
	if !ok || c.UserID != userID {
		return nil, campaign.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memRepo) GetPublic(_ context.Context, id string) (*domain.Campaign, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[id]
	if !ok {
		return nil, campaign.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memRepo) List(_ context.Context, userID string, f campaign.ListFilter) ([]domain.Campaign, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Campaign
	for _, c := range m.campaigns {
		if c.UserID != userID {
			continue
		}
		if f.Active != nil && c.Active != *f.Active {
			continue
		}
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (m *memRepo) Create(_ context.Context, c *domain.Campaign) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		return "", fmt.Errorf("id required")
	}
	cp := *c
	m.campaigns[cp.ID] = &cp
	return cp.ID, nil
}

func (m *memRepo) Update(_ context.Context, userID, id string, u campaign.UpdateFields) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[id]
	if !ok || c.UserID != userID {
		return campaign.ErrNotFound
	}
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Active != nil {
		c.Active = *u.Active
	}
	if u.EndDate != nil {
		c.EndDate = *u.EndDate
	}
	if u.Customization != nil {
		c.Customization = *u.Customization
	}
	return nil
}

func (m *memRepo) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[id]
	if !ok || c.UserID != userID {
		return campaign.ErrNotFound
	}
	delete(m.campaigns, id)
	return nil
}

const testUser = "user-1"

func TestCreateSeedsDefaults(t *testing.T) {
	svc := campaign.NewService(newMemRepo())
	c, err := svc.Create(context.Background(), testUser, campaign.CreateInput{Name: "Pesquisa Q3"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !c.Active {
		t.Fatal("new campaigns should be active")
	}
	if c.UserID != testUser {
		t.Fatalf("user id must come from the caller identity, got %q", c.UserID)
	}
	if c.Customization != domain.DefaultSurveyCustomization() {
		t.Fatalf("expected default customization, got %+v", c.Customization)
	}
	if c.Automation != domain.DefaultAutomationConfig() {
		t.Fatalf("expected default automation, got %+v", c.Automation)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := campaign.NewService(newMemRepo())
	if _, err := svc.Create(context.Background(), testUser, campaign.CreateInput{}); err == nil {
		t.Fatal("expected validation error for empty name")
	}

	start := time.Now()
	end := start.Add(-time.Hour)
	_, err := svc.Create(context.Background(), testUser, campaign.CreateInput{
		Name: "X", StartDate: start, EndDate: &end,
	})
	if err == nil {
		t.Fatal("expected validation error for end before start")
	}
}

func TestCustomizationRoundTrip(t *testing.T) {
	svc := campaign.NewService(newMemRepo())
	custom := domain.SurveyCustomization{
		PrimaryColor:    "#FF0000",
		BackgroundColor: "#000000",
		LogoURL:         "https://cdn.example.com/logo.png",
		Title:           "Avalie nosso atendimento",
		ThankYouMessage: "Valeu!",
	}

	c, err := svc.Create(context.Background(), testUser, campaign.CreateInput{
		Name: "Custom", Customization: &custom,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.Get(context.Background(), testUser, c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Customization != custom {
		t.Fatalf("customization did not round-trip: %+v", got.Customization)
	}
}

func TestCrossTenantAccessIsNotFound(t *testing.T) {
	repo := newMemRepo()
	svc := campaign.NewService(repo)
	c, _ := svc.Create(context.Background(), testUser, campaign.CreateInput{Name: "Mine"})

	if _, err := svc.Get(context.Background(), "other-user", c.ID); err != campaign.ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign campaign, got %v", err)
	}
	if err := svc.Delete(context.Background(), "other-user", c.ID); err != campaign.ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign delete, got %v", err)
	}
	name := "hijack"
	if _, err := svc.Update(context.Background(), "other-user", c.ID, campaign.UpdateFields{Name: &name}); err != campaign.ErrNotFound {
		t.Fatalf("expected ErrNotFound for foreign update, got %v", err)
	}

	// The real owner still sees the untouched campaign.
	got, err := svc.Get(context.Background(), testUser, c.ID)
	if err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if got.Name != "Mine" {
		t.Fatalf("campaign was modified across tenants: %q", got.Name)
	}
}

func TestDelete(t *testing.T) {
	svc := campaign.NewService(newMemRepo())
	c, _ := svc.Create(context.Background(), testUser, campaign.CreateInput{Name: "Temp"})

	if err := svc.Delete(context.Background(), testUser, c.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), testUser, c.ID); err != campaign.ErrNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
