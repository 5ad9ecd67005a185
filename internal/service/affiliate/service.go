// Package affiliate implements the referral program bookkeeping: the
// singleton-per-user affiliate record and its referrals, with aggregate
// totals kept equal to a grouped SUM over the referrals at all times.
package affiliate

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/meunps/platform/internal/domain"
)

// Service implements affiliate business logic.
type Service struct {
	repo Repository
}

// NewService creates an affiliate service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetOrCreate returns the user's affiliate record, materializing it with a
// fresh referral code on first access.
func (s *Service) GetOrCreate(ctx context.Context, userID string) (*domain.UserAffiliate, error) {
	a, err := s.repo.Get(ctx, userID)
	if err == nil {
		return a, nil
	}
	if err != ErrNotFound {
		return nil, err
	}

	fresh := &domain.UserAffiliate{
		ID:           uuid.New().String(),
		UserID:       userID,
		ReferralCode: newReferralCode(),
		BankAccount:  domain.DefaultBankAccount(),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	switch err := s.repo.Insert(ctx, fresh); err {
	case nil:
		return fresh, nil
	case ErrConflict:
		return s.repo.Get(ctx, userID)
	default:
		return nil, err
	}
}

// UpdateBankAccount replaces the payout details for the user's affiliate
// record, creating it first if needed.
func (s *Service) UpdateBankAccount(ctx context.Context, userID string, b domain.BankAccount) (*domain.UserAffiliate, error) {
	if _, err := s.GetOrCreate(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateBankAccount(ctx, userID, b); err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, userID)
}

// ListReferrals returns all referrals for the user's affiliate record.
func (s *Service) ListReferrals(ctx context.Context, userID string) ([]domain.AffiliateReferral, error) {
	a, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListReferrals(ctx, a.ID)
}

// AddReferral records a new introduction. The referral starts pending and
// the parent totals are recomputed atomically with the insert.
func (s *Service) AddReferral(ctx context.Context, userID, referredEmail string, commission float64) (*domain.AffiliateReferral, error) {
	if referredEmail == "" {
		return nil, fmt.Errorf("referred_email is required")
	}
	if commission < 0 {
		return nil, fmt.Errorf("commission cannot be negative")
	}

	a, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	r := &domain.AffiliateReferral{
		ID:            uuid.New().String(),
		AffiliateID:   a.ID,
		ReferredEmail: referredEmail,
		Commission:    commission,
		Status:        domain.ReferralPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	if err := s.repo.CreateReferral(ctx, r); err != nil {
		return nil, err
	}

	log.Printf("[affiliate.Service] Affiliate %s: referral %s recorded", a.ID, r.ID)
	return r, nil
}

// SetReferralStatus transitions a referral and recomputes the parent
// totals atomically.
func (s *Service) SetReferralStatus(ctx context.Context, userID, referralID string, status domain.ReferralStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	a, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}
	return s.repo.UpdateReferralStatus(ctx, a.ID, referralID, status)
}

// newReferralCode returns a short shareable code like "MN-7F3A21".
func newReferralCode() string {
	b := make([]byte, 3)
	rand.Read(b)
	return fmt.Sprintf("MN-%X", b)
}
