package domain

import "time"

// Contact is a per-user CRM record. GroupIDs and Tags are stored as JSON
// arrays, not join tables; membership is not validated against group rows
// (kept from the original product, see DESIGN.md).
type Contact struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	GroupIDs  []string  `json:"group_ids" db:"group_ids"`
	Tags      []string  `json:"tags" db:"tags"`
	Notes     string    `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
