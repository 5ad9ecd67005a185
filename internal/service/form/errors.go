package form

import "errors"

// Sentinel errors for the form service layer.
var (
	ErrCampaignNotFound = errors.New("campaign not found")
)
