package affiliate

import (
	"context"

	"github.com/meunps/platform/internal/domain"
)

// Repository defines the data access contract for the referral program.
//
// The aggregate totals on user_affiliates are derivable data. Every
// implementation of CreateReferral and UpdateReferralStatus MUST recompute
// the four totals from a grouped SUM over that affiliate's referrals inside
// the same transaction as the mutation, so the invariant
// totals == SUM(referrals) holds under concurrency.
type Repository interface {
	// Get returns the affiliate row for a user. Returns ErrNotFound when
	// the row was never materialized.
	Get(ctx context.Context, userID string) (*domain.UserAffiliate, error)

	// Insert materializes the affiliate row on first access. Returns
	// ErrConflict when a concurrent first access already created it.
	Insert(ctx context.Context, a *domain.UserAffiliate) error

	// UpdateBankAccount replaces the payout details blob.
	UpdateBankAccount(ctx context.Context, userID string, b domain.BankAccount) error

	// ListReferrals returns all referrals for an affiliate, newest first.
	ListReferrals(ctx context.Context, affiliateID string) ([]domain.AffiliateReferral, error)

	// CreateReferral inserts a referral and recomputes the parent totals
	// in one transaction.
	CreateReferral(ctx context.Context, r *domain.AffiliateReferral) error

	// UpdateReferralStatus changes a referral's status and recomputes the
	// parent totals in one transaction. Returns ErrReferralNotFound when
	// the referral is missing or belongs to another affiliate.
	UpdateReferralStatus(ctx context.Context, affiliateID, referralID string, status domain.ReferralStatus) error
}
