package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/service/affiliate"
)

// AffiliateRepo implements affiliate.Repository against PostgreSQL.
//
// The four totals on user_affiliates are never adjusted incrementally.
// Every referral mutation re-derives them with one grouped SUM inside the
// mutation's transaction, so the stored totals always equal the sums over
// affiliate_referrals.
type AffiliateRepo struct{ db *sql.DB }

// NewAffiliateRepo creates a Postgres-backed affiliate repository.
func NewAffiliateRepo(db *sql.DB) *AffiliateRepo { return &AffiliateRepo{db: db} }

func (r *AffiliateRepo) Get(ctx context.Context, userID string) (*domain.UserAffiliate, error) {
	a := &domain.UserAffiliate{}
	var bank string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, referral_code, total_referrals, total_earnings,
		       total_received, total_pending, COALESCE(bank_account::text,'{}'),
		       created_at, updated_at
		FROM user_affiliates
		WHERE user_id = $1
	`, userID).Scan(&a.ID, &a.UserID, &a.ReferralCode, &a.TotalReferrals,
		&a.TotalEarnings, &a.TotalReceived, &a.TotalPending, &bank,
		&a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, affiliate.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get affiliate: %w", err)
	}
	if err := json.Unmarshal([]byte(bank), &a.BankAccount); err != nil {
		return nil, fmt.Errorf("decode bank account: %w", err)
	}
	return a, nil
}

func (r *AffiliateRepo) Insert(ctx context.Context, a *domain.UserAffiliate) error {
	bank, err := json.Marshal(a.BankAccount)
	if err != nil {
		return fmt.Errorf("marshal bank account: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO user_affiliates
			(id, user_id, referral_code, total_referrals, total_earnings,
			 total_received, total_pending, bank_account, created_at, updated_at)
		VALUES ($1, $2, $3, 0, 0, 0, 0, $4, NOW(), NOW())
	`, a.ID, a.UserID, a.ReferralCode, bank)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return affiliate.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert affiliate: %w", err)
	}
	return nil
}

func (r *AffiliateRepo) UpdateBankAccount(ctx context.Context, userID string, b domain.BankAccount) error {
	bank, err := json.Marshal(b)
	if err != nil {
		return fmt.Errorf("marshal bank account: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE user_affiliates SET bank_account = $1, updated_at = NOW()
		WHERE user_id = $2
	`, bank, userID)
	if err != nil {
		return fmt.Errorf("update bank account: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return affiliate.ErrNotFound
	}
	return nil
}

func (r *AffiliateRepo) ListReferrals(ctx context.Context, affiliateID string) ([]domain.AffiliateReferral, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, affiliate_id, referred_email, commission, status, created_at, updated_at
		FROM affiliate_referrals
		WHERE affiliate_id = $1
		ORDER BY created_at DESC
	`, affiliateID)
	if err != nil {
		return nil, fmt.Errorf("list referrals: %w", err)
	}
	defer rows.Close()

	var out []domain.AffiliateReferral
	for rows.Next() {
		var ref domain.AffiliateReferral
		if err := rows.Scan(&ref.ID, &ref.AffiliateID, &ref.ReferredEmail,
			&ref.Commission, &ref.Status, &ref.CreatedAt, &ref.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan referral: %w", err)
		}
		out = append(out, ref)
	}
	return out, rows.Err()
}

func (r *AffiliateRepo) CreateReferral(ctx context.Context, ref *domain.AffiliateReferral) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create referral: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO affiliate_referrals (id, affiliate_id, referred_email, commission, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`, ref.ID, ref.AffiliateID, ref.ReferredEmail, ref.Commission, ref.Status)
	if err != nil {
		return fmt.Errorf("insert referral: %w", err)
	}

	if err := recomputeTotals(ctx, tx, ref.AffiliateID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create referral: %w", err)
	}
	return nil
}

func (r *AffiliateRepo) UpdateReferralStatus(ctx context.Context, affiliateID, referralID string, status domain.ReferralStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update referral: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE affiliate_referrals SET status = $1, updated_at = NOW()
		WHERE id = $2 AND affiliate_id = $3
	`, status, referralID, affiliateID)
	if err != nil {
		return fmt.Errorf("update referral: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return affiliate.ErrReferralNotFound
	}

	if err := recomputeTotals(ctx, tx, affiliateID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update referral: %w", err)
	}
	return nil
}

func recomputeTotals(ctx context.Context, tx *sql.Tx, affiliateID string) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE user_affiliates SET
			total_referrals = t.cnt,
			total_earnings  = t.earnings,
			total_received  = t.received,
			total_pending   = t.pending,
			updated_at      = NOW()
		FROM (
			SELECT COUNT(*) AS cnt,
			       COALESCE(SUM(commission), 0) AS earnings,
			       COALESCE(SUM(commission) FILTER (WHERE status = 'paid'), 0) AS received,
			       COALESCE(SUM(commission) FILTER (WHERE status = 'pending'), 0) AS pending
			FROM affiliate_referrals
			WHERE affiliate_id = $1
		) t
		WHERE user_affiliates.id = $1
	`, affiliateID)
	if err != nil {
		return fmt.Errorf("recompute totals: %w", err)
	}
	return nil
}
