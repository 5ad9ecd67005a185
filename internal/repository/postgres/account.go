package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/service/account"
)

// AccountRepo implements account.Repository against PostgreSQL.
// UNIQUE(user_id) on both tables turns a lost first-access race into a
// unique violation, surfaced as ErrConflict so the service re-reads the
// winner's row.
type AccountRepo struct{ db *sql.DB }

// NewAccountRepo creates a Postgres-backed account repository.
func NewAccountRepo(db *sql.DB) *AccountRepo { return &AccountRepo{db: db} }

func (r *AccountRepo) GetProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	p := &domain.UserProfile{}
	var prefs string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, COALESCE(company,''), COALESCE(phone,''), COALESCE(avatar_url,''),
		       COALESCE(preferences::text,'{}'), created_at, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`, userID).Scan(&p.ID, &p.UserID, &p.Company, &p.Phone, &p.AvatarURL,
		&prefs, &p.CreatedAt, &p.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, account.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	if err := json.Unmarshal([]byte(prefs), &p.Preferences); err != nil {
		return nil, fmt.Errorf("decode preferences: %w", err)
	}
	return p, nil
}

func (r *AccountRepo) InsertProfile(ctx context.Context, p *domain.UserProfile) error {
	prefs, err := json.Marshal(p.Preferences)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO user_profiles (id, user_id, company, phone, avatar_url, preferences, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`, p.ID, p.UserID, p.Company, p.Phone, p.AvatarURL, prefs)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return account.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

func (r *AccountRepo) UpdateProfile(ctx context.Context, p *domain.UserProfile) error {
	prefs, err := json.Marshal(p.Preferences)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE user_profiles
		SET company = $1, phone = $2, avatar_url = $3, preferences = $4, updated_at = NOW()
		WHERE user_id = $5
	`, p.Company, p.Phone, p.AvatarURL, prefs, p.UserID)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return account.ErrNotFound
	}
	return nil
}

func (r *AccountRepo) GetConfig(ctx context.Context, userID string) (*domain.AppConfig, error) {
	c := &domain.AppConfig{}
	var integrations string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, COALESCE(integrations::text,'{}'), created_at, updated_at
		FROM app_configs
		WHERE user_id = $1
	`, userID).Scan(&c.ID, &c.UserID, &integrations, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, account.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get config: %w", err)
	}
	if err := json.Unmarshal([]byte(integrations), &c.Integrations); err != nil {
		return nil, fmt.Errorf("decode integrations: %w", err)
	}
	return c, nil
}

func (r *AccountRepo) InsertConfig(ctx context.Context, c *domain.AppConfig) error {
	integrations, err := json.Marshal(c.Integrations)
	if err != nil {
		return fmt.Errorf("marshal integrations: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO app_configs (id, user_id, integrations, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
	`, c.ID, c.UserID, integrations)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return account.ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert config: %w", err)
	}
	return nil
}

func (r *AccountRepo) UpdateConfig(ctx context.Context, c *domain.AppConfig) error {
	integrations, err := json.Marshal(c.Integrations)
	if err != nil {
		return fmt.Errorf("marshal integrations: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE app_configs
		SET integrations = $1, updated_at = NOW()
		WHERE user_id = $2
	`, integrations, c.UserID)
	if err != nil {
		return fmt.Errorf("update config: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return account.ErrNotFound
	}
	return nil
}
