package response_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/service/response"
)

// memRepo mimics the transactional Submit contract in memory: the campaign
// check and the insert happen under one lock.
type memRepo struct {
	mu        sync.Mutex
	campaigns map[string]*domain.Campaign
	responses map[string]*domain.NpsResponse
}

func newMemRepo(campaigns ...*domain.Campaign) *memRepo {
	m := &memRepo{
		campaigns: make(map[string]*domain.Campaign),
		responses: make(map[string]*domain.NpsResponse),
	}
	for _, c := range campaigns {
		m.campaigns[c.ID] = c
	}
	return m
}

func (m *memRepo) Submit(_ context.Context, r *domain.NpsResponse) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[r.CampaignID]
	if !ok {
		return response.ErrCampaignNotFound
	}
	if !c.AcceptsSubmissionsAt(time.Now()) {
		return response.ErrCampaignClosed
	}
	cp := *r
	m.responses[cp.ID] = &cp
	return nil
}

func (m *memRepo) ListByCampaign(_ context.Context, userID, campaignID string, _ response.ListFilter) ([]domain.NpsResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.campaigns[campaignID]
	if !ok || c.UserID != userID {
		return nil, response.ErrCampaignNotFound
	}
	var out []domain.NpsResponse
	for _, r := range m.responses {
		if r.CampaignID == campaignID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memRepo) Delete(_ context.Context, userID, responseID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.responses[responseID]
	if !ok {
		return response.ErrNotFound
	}
	c := m.campaigns[r.CampaignID]
	if c == nil || c.UserID != userID {
		return response.ErrNotFound
	}
	delete(m.responses, responseID)
	return nil
}

func (m *memRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.responses)
}

func openCampaign() *domain.Campaign {
	return &domain.Campaign{
		ID:        "camp-1",
		UserID:    "user-1",
		Active:    true,
		StartDate: time.Now().Add(-24 * time.Hour),
	}
}

func TestSubmitScoreBounds(t *testing.T) {
	repo := newMemRepo(openCampaign())
	svc := response.NewService(repo)

	for _, bad := range []int{-1, 11, 100} {
		_, err := svc.Submit(context.Background(), response.SubmitInput{CampaignID: "camp-1", Score: bad})
		assert.ErrorIs(t, err, response.ErrInvalidScore, "score %d", bad)
	}
	assert.Equal(t, 0, repo.count(), "rejected submissions must not insert rows")

	for _, ok := range []int{0, 10} {
		_, err := svc.Submit(context.Background(), response.SubmitInput{CampaignID: "camp-1", Score: ok})
		assert.NoError(t, err, "score %d", ok)
	}
}

func TestSubmitUnknownCampaign(t *testing.T) {
	svc := response.NewService(newMemRepo())
	_, err := svc.Submit(context.Background(), response.SubmitInput{CampaignID: "nope", Score: 9})
	assert.ErrorIs(t, err, response.ErrCampaignNotFound)
}

func TestSubmitInactiveCampaign(t *testing.T) {
	c := openCampaign()
	c.Active = false
	repo := newMemRepo(c)
	svc := response.NewService(repo)

	_, err := svc.Submit(context.Background(), response.SubmitInput{CampaignID: c.ID, Score: 9})
	assert.ErrorIs(t, err, response.ErrCampaignClosed)
	assert.Equal(t, 0, repo.count())
}

func TestSubmitOutsideWindow(t *testing.T) {
	ended := openCampaign()
	past := time.Now().Add(-time.Hour)
	ended.EndDate = &past

	future := openCampaign()
	future.ID = "camp-2"
	future.StartDate = time.Now().Add(time.Hour)

	repo := newMemRepo(ended, future)
	svc := response.NewService(repo)

	_, err := svc.Submit(context.Background(), response.SubmitInput{CampaignID: ended.ID, Score: 9})
	assert.ErrorIs(t, err, response.ErrCampaignClosed, "ended campaign")

	_, err = svc.Submit(context.Background(), response.SubmitInput{CampaignID: future.ID, Score: 9})
	assert.ErrorIs(t, err, response.ErrCampaignClosed, "not yet started campaign")

	assert.Equal(t, 0, repo.count())
}

func TestSubmitRecordsFormResponses(t *testing.T) {
	repo := newMemRepo(openCampaign())
	svc := response.NewService(repo)

	r, err := svc.Submit(context.Background(), response.SubmitInput{
		CampaignID:    "camp-1",
		Score:         8,
		Feedback:      "Bom atendimento",
		FormResponses: map[string]any{"nps_score": 8, "feedback": "Bom atendimento"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.False(t, r.CreatedAt.IsZero())
	assert.Equal(t, 8, r.Score)
}

func TestListIsOwnerScoped(t *testing.T) {
	repo := newMemRepo(openCampaign())
	svc := response.NewService(repo)

	_, err := svc.Submit(context.Background(), response.SubmitInput{CampaignID: "camp-1", Score: 9})
	require.NoError(t, err)

	rs, err := svc.ListByCampaign(context.Background(), "user-1", "camp-1", response.ListFilter{})
	require.NoError(t, err)
	assert.Len(t, rs, 1)

	_, err = svc.ListByCampaign(context.Background(), "intruder", "camp-1", response.ListFilter{})
	assert.ErrorIs(t, err, response.ErrCampaignNotFound)
}
