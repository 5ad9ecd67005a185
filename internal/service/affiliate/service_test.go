package affiliate_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/service/affiliate"
)

// memRepo reproduces the transactional recompute contract in memory: every
// referral mutation immediately rebuilds the parent totals from scratch.
type memRepo struct {
	mu         sync.Mutex
	affiliates map[string]*domain.UserAffiliate    // keyed by user id
	referrals  map[string]*domain.AffiliateReferral // keyed by referral id
}

func newMemRepo() *memRepo {
	return &memRepo{
		affiliates: make(map[string]*domain.UserAffiliate),
		referrals:  make(map[string]*domain.AffiliateReferral),
	}
}

func (m *memRepo) Get(_ context.Context, userID string) (*domain.UserAffiliate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.affiliates[userID]
	if !ok {
		return nil, affiliate.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *memRepo) Insert(_ context.Context, a *domain.UserAffiliate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.affiliates[a.UserID]; ok {
		return affiliate.ErrConflict
	}
	cp := *a
	m.affiliates[a.UserID] = &cp
	return nil
}

func (m *memRepo) UpdateBankAccount(_ context.Context, userID string, b domain.BankAccount) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.affiliates[userID]
	if !ok {
		return affiliate.ErrNotFound
	}
	a.BankAccount = b
	return nil
}

func (m *memRepo) ListReferrals(_ context.Context, affiliateID string) ([]domain.AffiliateReferral, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.AffiliateReferral
	for _, r := range m.referrals {
		if r.AffiliateID == affiliateID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memRepo) CreateReferral(_ context.Context, r *domain.AffiliateReferral) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *r
	m.referrals[cp.ID] = &cp
	m.recompute(cp.AffiliateID)
	return nil
}

func (m *memRepo) UpdateReferralStatus(_ context.Context, affiliateID, referralID string, status domain.ReferralStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.referrals[referralID]
	if !ok || r.AffiliateID != affiliateID {
		return affiliate.ErrReferralNotFound
	}
	r.Status = status
	m.recompute(affiliateID)
	return nil
}

// recompute mirrors the grouped-SUM the SQL repository runs in-transaction.
func (m *memRepo) recompute(affiliateID string) {
	for _, a := range m.affiliates {
		if a.ID != affiliateID {
			continue
		}
		a.TotalReferrals, a.TotalEarnings, a.TotalReceived, a.TotalPending = 0, 0, 0, 0
		for _, r := range m.referrals {
			if r.AffiliateID != affiliateID {
				continue
			}
			a.TotalReferrals++
			a.TotalEarnings += r.Commission
			switch r.Status {
			case domain.ReferralPaid:
				a.TotalReceived += r.Commission
			case domain.ReferralPending:
				a.TotalPending += r.Commission
			}
		}
	}
}

// sums recomputes the expected totals directly from the referral rows.
func (m *memRepo) sums(affiliateID string) (n int, earnings, received, pending float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.referrals {
		if r.AffiliateID != affiliateID {
			continue
		}
		n++
		earnings += r.Commission
		switch r.Status {
		case domain.ReferralPaid:
			received += r.Commission
		case domain.ReferralPending:
			pending += r.Commission
		}
	}
	return
}

func TestGetOrCreateMaterializesOnce(t *testing.T) {
	svc := affiliate.NewService(newMemRepo())

	a1, err := svc.GetOrCreate(context.Background(), "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, a1.ReferralCode)

	a2, err := svc.GetOrCreate(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, a1.ID, a2.ID)
	assert.Equal(t, a1.ReferralCode, a2.ReferralCode)
}

func TestTotalsMatchReferralSums(t *testing.T) {
	repo := newMemRepo()
	svc := affiliate.NewService(repo)
	ctx := context.Background()

	r1, err := svc.AddReferral(ctx, "user-1", "a@example.com", 50)
	require.NoError(t, err)
	_, err = svc.AddReferral(ctx, "user-1", "b@example.com", 30)
	require.NoError(t, err)
	r3, err := svc.AddReferral(ctx, "user-1", "c@example.com", 20)
	require.NoError(t, err)

	require.NoError(t, svc.SetReferralStatus(ctx, "user-1", r1.ID, domain.ReferralPaid))
	require.NoError(t, svc.SetReferralStatus(ctx, "user-1", r3.ID, domain.ReferralCancelled))

	a, err := svc.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)

	n, earnings, received, pending := repo.sums(a.ID)
	assert.Equal(t, n, a.TotalReferrals)
	assert.Equal(t, earnings, a.TotalEarnings)
	assert.Equal(t, received, a.TotalReceived)
	assert.Equal(t, pending, a.TotalPending)

	assert.Equal(t, 3, a.TotalReferrals)
	assert.Equal(t, 100.0, a.TotalEarnings)
	assert.Equal(t, 50.0, a.TotalReceived)
	assert.Equal(t, 30.0, a.TotalPending)
}

func TestRecomputeIsIdempotent(t *testing.T) {
	repo := newMemRepo()
	svc := affiliate.NewService(repo)
	ctx := context.Background()

	r, err := svc.AddReferral(ctx, "user-1", "a@example.com", 75)
	require.NoError(t, err)

	// Re-applying the same status must not change the totals.
	require.NoError(t, svc.SetReferralStatus(ctx, "user-1", r.ID, domain.ReferralPending))
	require.NoError(t, svc.SetReferralStatus(ctx, "user-1", r.ID, domain.ReferralPending))

	a, err := svc.GetOrCreate(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, a.TotalReferrals)
	assert.Equal(t, 75.0, a.TotalPending)
}

func TestSetReferralStatusValidation(t *testing.T) {
	svc := affiliate.NewService(newMemRepo())
	err := svc.SetReferralStatus(context.Background(), "user-1", "ref-1", domain.ReferralStatus("bogus"))
	assert.ErrorIs(t, err, affiliate.ErrInvalidStatus)
}

func TestReferralsAreScopedToAffiliate(t *testing.T) {
	svc := affiliate.NewService(newMemRepo())
	ctx := context.Background()

	r, err := svc.AddReferral(ctx, "user-1", "a@example.com", 10)
	require.NoError(t, err)

	// user-2's affiliate record cannot touch user-1's referral.
	err = svc.SetReferralStatus(ctx, "user-2", r.ID, domain.ReferralPaid)
	assert.ErrorIs(t, err, affiliate.ErrReferralNotFound)
}
