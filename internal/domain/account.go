package domain

import "time"

// Preferences is the JSON settings blob on a user profile.
type Preferences struct {
	Language           string `json:"language"`
	Timezone           string `json:"timezone"`
	EmailNotifications bool   `json:"email_notifications"`
}

// DefaultPreferences returns the preferences seeded when a profile row is
// lazily created on first access.
func DefaultPreferences() Preferences {
	return Preferences{
		Language:           "pt-BR",
		Timezone:           "America/Sao_Paulo",
		EmailNotifications: true,
	}
}

// UserProfile is the singleton-per-user extended settings record,
// materialized on first GET.
type UserProfile struct {
	ID          string      `json:"id" db:"id"`
	UserID      string      `json:"user_id" db:"user_id"`
	Company     string      `json:"company" db:"company"`
	Phone       string      `json:"phone" db:"phone"`
	AvatarURL   string      `json:"avatar_url" db:"avatar_url"`
	Preferences Preferences `json:"preferences" db:"preferences"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// SMTPSettings holds the user-configured outbound mail relay.
type SMTPSettings struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	User      string `json:"user"`
	FromEmail string `json:"from_email"`
}

// ZenviaSettings holds the SMS provider integration.
type ZenviaSettings struct {
	Enabled  bool   `json:"enabled"`
	APIToken string `json:"api_token"`
}

// Integrations is the JSON blob on an app config row.
type Integrations struct {
	SMTP   SMTPSettings   `json:"smtp"`
	Zenvia ZenviaSettings `json:"zenvia"`
}

// DefaultIntegrations returns the integrations blob seeded on lazy creation.
func DefaultIntegrations() Integrations {
	return Integrations{SMTP: SMTPSettings{Port: 587}}
}

// AppConfig is the singleton-per-user application configuration record.
type AppConfig struct {
	ID           string       `json:"id" db:"id"`
	UserID       string       `json:"user_id" db:"user_id"`
	Integrations Integrations `json:"integrations" db:"integrations"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
}
