package affiliate

import "errors"

// Sentinel errors for the affiliate service layer.
var (
	ErrNotFound         = errors.New("affiliate not found")
	ErrReferralNotFound = errors.New("referral not found")
	ErrConflict         = errors.New("affiliate already exists")
	ErrInvalidStatus    = errors.New("invalid referral status")
)
