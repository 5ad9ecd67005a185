package domain

import "time"

// TaxonomyKind distinguishes the three per-user classification tables.
type TaxonomyKind string

const (
	TaxonomySource    TaxonomyKind = "source"
	TaxonomySituation TaxonomyKind = "situation"
	TaxonomyGroup     TaxonomyKind = "group"
)

// Valid reports whether k names a known taxonomy table.
func (k TaxonomyKind) Valid() bool {
	switch k {
	case TaxonomySource, TaxonomySituation, TaxonomyGroup:
		return true
	}
	return false
}

// Taxonomy is a per-user classification entry (source, situation or group)
// referenced by campaign defaults and response classification.
type Taxonomy struct {
	ID          string       `json:"id" db:"id"`
	UserID      string       `json:"user_id" db:"user_id"`
	Kind        TaxonomyKind `json:"-" db:"-"`
	Name        string       `json:"name" db:"name"`
	Description string       `json:"description" db:"description"`
	Color       string       `json:"color" db:"color"`
	CreatedAt   time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at" db:"updated_at"`
}
