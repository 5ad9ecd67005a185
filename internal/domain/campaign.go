package domain

import "time"

// SurveyCustomization controls the look of the public survey landing page.
// Stored as a JSON column; the zero value is never persisted, use
// DefaultSurveyCustomization.
type SurveyCustomization struct {
	PrimaryColor    string `json:"primary_color"`
	BackgroundColor string `json:"background_color"`
	LogoURL         string `json:"logo_url"`
	Title           string `json:"title"`
	ThankYouMessage string `json:"thank_you_message"`
}

// DefaultSurveyCustomization returns the customization seeded on campaign
// creation when the client sends none.
func DefaultSurveyCustomization() SurveyCustomization {
	return SurveyCustomization{
		PrimaryColor:    "#4F46E5",
		BackgroundColor: "#FFFFFF",
		LogoURL:         "",
		Title:           "Como você avalia nossa empresa?",
		ThankYouMessage: "Obrigado pela sua avaliação!",
	}
}

// AutomationConfig controls post-submission automation for a campaign.
type AutomationConfig struct {
	Enabled       bool   `json:"enabled"`
	SendEmail     bool   `json:"send_email"`
	EmailTemplate string `json:"email_template"`
	WebhookURL    string `json:"webhook_url"`
}

// DefaultAutomationConfig returns the automation blob seeded on creation.
func DefaultAutomationConfig() AutomationConfig {
	return AutomationConfig{}
}

// Campaign is a configured survey instance with a validity window.
// Public submission is accepted only while Active is true and the current
// time falls within [StartDate, EndDate or +inf).
type Campaign struct {
	ID                 string              `json:"id" db:"id"`
	UserID             string              `json:"user_id" db:"user_id"`
	Name               string              `json:"name" db:"name"`
	Description        string              `json:"description" db:"description"`
	StartDate          time.Time           `json:"start_date" db:"start_date"`
	EndDate            *time.Time          `json:"end_date" db:"end_date"`
	Active             bool                `json:"active" db:"active"`
	DefaultSourceID    *string             `json:"default_source_id" db:"default_source_id"`
	DefaultSituationID *string             `json:"default_situation_id" db:"default_situation_id"`
	DefaultGroupID     *string             `json:"default_group_id" db:"default_group_id"`
	Customization      SurveyCustomization `json:"survey_customization" db:"survey_customization"`
	Automation         AutomationConfig    `json:"automation" db:"automation"`
	CreatedAt          time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at" db:"updated_at"`
}

// AcceptsSubmissionsAt reports whether a public response may be recorded at
// the given instant. EndDate nil means the campaign never expires.
func (c *Campaign) AcceptsSubmissionsAt(t time.Time) bool {
	if !c.Active {
		return false
	}
	if t.Before(c.StartDate) {
		return false
	}
	if c.EndDate != nil && !t.Before(*c.EndDate) {
		return false
	}
	return true
}

// FormField is one ordered field descriptor in a campaign form.
type FormField struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Label    string `json:"label"`
	Required bool   `json:"required"`
	Order    int    `json:"order"`
}

// CampaignForm holds the ordered field list shown on the public survey page.
// At most one form exists per campaign.
type CampaignForm struct {
	ID         string      `json:"id" db:"id"`
	CampaignID string      `json:"campaign_id" db:"campaign_id"`
	Fields     []FormField `json:"fields" db:"fields"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" db:"updated_at"`
}

// DefaultFormFields is the built-in two-field form served for campaigns
// that never customized theirs.
func DefaultFormFields() []FormField {
	return []FormField{
		{ID: "nps_score", Type: "nps", Label: "Em uma escala de 0 a 10, o quanto você recomendaria nossa empresa?", Required: true, Order: 0},
		{ID: "feedback", Type: "textarea", Label: "Conte-nos o motivo da sua nota", Required: false, Order: 1},
	}
}
