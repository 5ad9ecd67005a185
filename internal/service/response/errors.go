package response

import "errors"

// Sentinel errors for the response service layer.
var (
	ErrInvalidScore     = errors.New("score must be between 0 and 10")
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrCampaignClosed   = errors.New("campaign is not accepting responses")
	ErrNotFound         = errors.New("response not found")
)
