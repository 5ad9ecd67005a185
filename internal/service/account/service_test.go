package account_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/service/account"
)

type memRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.UserProfile
	configs  map[string]*domain.AppConfig

	// forceConflict simulates losing the first-access insert race.
	forceConflict bool
}

func newMemRepo() *memRepo {
	return &memRepo{
		profiles: make(map[string]*domain.UserProfile),
		configs:  make(map[string]*domain.AppConfig),
	}
}

func (m *memRepo) GetProfile(_ context.Context, userID string) (*domain.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, account.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memRepo) InsertProfile(_ context.Context, p *domain.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.forceConflict {
		// A concurrent request won the race; seed the winner's row.
		m.forceConflict = false
		winner := *p
		winner.ID = "winner"
		m.profiles[p.UserID] = &winner
		return account.ErrConflict
	}
	if _, ok := m.profiles[p.UserID]; ok {
		return account.ErrConflict
	}
	cp := *p
	m.profiles[p.UserID] = &cp
	return nil
}

func (m *memRepo) UpdateProfile(_ context.Context, p *domain.UserProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[p.UserID]; !ok {
		return account.ErrNotFound
	}
	cp := *p
	m.profiles[p.UserID] = &cp
	return nil
}

func (m *memRepo) GetConfig(_ context.Context, userID string) (*domain.AppConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.configs[userID]
	if !ok {
		return nil, account.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memRepo) InsertConfig(_ context.Context, c *domain.AppConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.configs[c.UserID]; ok {
		return account.ErrConflict
	}
	cp := *c
	m.configs[c.UserID] = &cp
	return nil
}

func (m *memRepo) UpdateConfig(_ context.Context, c *domain.AppConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.configs[c.UserID]; !ok {
		return account.ErrNotFound
	}
	cp := *c
	m.configs[c.UserID] = &cp
	return nil
}

func TestGetOrCreateProfileSeedsDefaults(t *testing.T) {
	svc := account.NewService(newMemRepo())

	p, err := svc.GetOrCreateProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", p.UserID)
	assert.Equal(t, domain.DefaultPreferences(), p.Preferences)
	assert.Equal(t, "pt-BR", p.Preferences.Language)
}

func TestGetOrCreateProfileIsIdempotent(t *testing.T) {
	svc := account.NewService(newMemRepo())

	p1, err := svc.GetOrCreateProfile(context.Background(), "user-1")
	require.NoError(t, err)
	p2, err := svc.GetOrCreateProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, p1.ID, p2.ID)
}

func TestGetOrCreateProfileSurvivesInsertRace(t *testing.T) {
	repo := newMemRepo()
	repo.forceConflict = true
	svc := account.NewService(repo)

	p, err := svc.GetOrCreateProfile(context.Background(), "user-1")
	require.NoError(t, err)
	// The loser must surface the winner's row, not an error.
	assert.Equal(t, "winner", p.ID)
}

func TestUpdateProfileCreatesThenUpdates(t *testing.T) {
	svc := account.NewService(newMemRepo())

	p, err := svc.UpdateProfile(context.Background(), "user-1", account.ProfileInput{
		Company: "Acme LTDA",
		Phone:   "+55 11 99999-0000",
	})
	require.NoError(t, err)
	assert.Equal(t, "Acme LTDA", p.Company)
	// Untouched preferences keep their defaults.
	assert.Equal(t, domain.DefaultPreferences(), p.Preferences)
}

func TestGetOrCreateConfigSeedsIntegrations(t *testing.T) {
	svc := account.NewService(newMemRepo())

	c, err := svc.GetOrCreateConfig(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, 587, c.Integrations.SMTP.Port)
	assert.False(t, c.Integrations.Zenvia.Enabled)
}

func TestUpdateConfigRoundTrip(t *testing.T) {
	svc := account.NewService(newMemRepo())

	want := domain.Integrations{
		SMTP:   domain.SMTPSettings{Host: "smtp.example.com", Port: 465, User: "nps", FromEmail: "nps@example.com"},
		Zenvia: domain.ZenviaSettings{Enabled: true, APIToken: "tok"},
	}
	c, err := svc.UpdateConfig(context.Background(), "user-1", want)
	require.NoError(t, err)
	assert.Equal(t, want, c.Integrations)

	got, err := svc.GetOrCreateConfig(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, want, got.Integrations)
}
