package domain

import "time"

// Score bounds for an NPS answer.
const (
	MinScore = 0
	MaxScore = 10
)

// NpsResponse is a single public survey submission. Rows are immutable once
// created; there is deliberately no updated_at column.
type NpsResponse struct {
	ID            string         `json:"id" db:"id"`
	CampaignID    string         `json:"campaign_id" db:"campaign_id"`
	Score         int            `json:"score" db:"score"`
	Feedback      string         `json:"feedback" db:"feedback"`
	SourceID      *string        `json:"source_id" db:"source_id"`
	SituationID   *string        `json:"situation_id" db:"situation_id"`
	GroupID       *string        `json:"group_id" db:"group_id"`
	FormResponses map[string]any `json:"form_responses" db:"form_responses"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
}

// ValidScore reports whether s is inside the 0-10 NPS scale.
func ValidScore(s int) bool {
	return s >= MinScore && s <= MaxScore
}
