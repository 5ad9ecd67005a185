package domain

import "time"

// ReferralStatus enumerates the payout states of a referral.
type ReferralStatus string

const (
	ReferralPending   ReferralStatus = "pending"
	ReferralPaid      ReferralStatus = "paid"
	ReferralCancelled ReferralStatus = "cancelled"
)

// Valid reports whether s is a known referral status.
func (s ReferralStatus) Valid() bool {
	switch s {
	case ReferralPending, ReferralPaid, ReferralCancelled:
		return true
	}
	return false
}

// BankAccount is the JSON payout details blob on an affiliate row.
type BankAccount struct {
	Bank     string `json:"bank"`
	Agency   string `json:"agency"`
	Account  string `json:"account"`
	Document string `json:"document"`
	PixKey   string `json:"pix_key"`
}

// DefaultBankAccount returns the empty payout blob seeded on lazy creation.
func DefaultBankAccount() BankAccount {
	return BankAccount{}
}

// UserAffiliate is the singleton-per-user referral program record.
//
// The four total columns are derivable from affiliate_referrals and are
// recomputed inside the same transaction as every referral mutation:
// TotalReferrals = COUNT(*), TotalEarnings = SUM(commission),
// TotalReceived = SUM(commission WHERE paid),
// TotalPending = SUM(commission WHERE pending).
type UserAffiliate struct {
	ID             string      `json:"id" db:"id"`
	UserID         string      `json:"user_id" db:"user_id"`
	ReferralCode   string      `json:"referral_code" db:"referral_code"`
	TotalReferrals int         `json:"total_referrals" db:"total_referrals"`
	TotalEarnings  float64     `json:"total_earnings" db:"total_earnings"`
	TotalReceived  float64     `json:"total_received" db:"total_received"`
	TotalPending   float64     `json:"total_pending" db:"total_pending"`
	BankAccount    BankAccount `json:"bank_account" db:"bank_account"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at" db:"updated_at"`
}

// AffiliateReferral tracks one introduced account and the commission owed.
type AffiliateReferral struct {
	ID            string         `json:"id" db:"id"`
	AffiliateID   string         `json:"affiliate_id" db:"affiliate_id"`
	ReferredEmail string         `json:"referred_email" db:"referred_email"`
	Commission    float64        `json:"commission" db:"commission"`
	Status        ReferralStatus `json:"status" db:"status"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}
