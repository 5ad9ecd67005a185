package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/service/form"
)

// FormRepo implements form.Repository against PostgreSQL. The field list is
// one JSONB column; UNIQUE(campaign_id) enforces at most one form per
// campaign, which makes Upsert an ON CONFLICT update.
type FormRepo struct{ db *sql.DB }

// NewFormRepo creates a Postgres-backed form repository.
func NewFormRepo(db *sql.DB) *FormRepo { return &FormRepo{db: db} }

func (r *FormRepo) GetByCampaign(ctx context.Context, campaignID string) (*domain.CampaignForm, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM campaigns WHERE id = $1)`, campaignID,
	).Scan(&exists); err != nil {
		return nil, fmt.Errorf("check campaign: %w", err)
	}
	if !exists {
		return nil, form.ErrCampaignNotFound
	}

	f := &domain.CampaignForm{}
	var fields string
	err := r.db.QueryRowContext(ctx, `
		SELECT id, campaign_id, COALESCE(fields::text,'[]'), created_at, updated_at
		FROM campaign_forms
		WHERE campaign_id = $1
	`, campaignID).Scan(&f.ID, &f.CampaignID, &fields, &f.CreatedAt, &f.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get form: %w", err)
	}
	if err := json.Unmarshal([]byte(fields), &f.Fields); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	return f, nil
}

func (r *FormRepo) Upsert(ctx context.Context, userID string, f *domain.CampaignForm) error {
	var owned bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM campaigns WHERE id = $1 AND user_id = $2)`,
		f.CampaignID, userID,
	).Scan(&owned); err != nil {
		return fmt.Errorf("check campaign: %w", err)
	}
	if !owned {
		return form.ErrCampaignNotFound
	}

	fields, err := json.Marshal(f.Fields)
	if err != nil {
		return fmt.Errorf("marshal fields: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO campaign_forms (id, campaign_id, fields, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		ON CONFLICT (campaign_id)
		DO UPDATE SET fields = EXCLUDED.fields, updated_at = NOW()
	`, f.ID, f.CampaignID, fields)
	if err != nil {
		return fmt.Errorf("upsert form: %w", err)
	}
	return nil
}

func (r *FormRepo) Delete(ctx context.Context, userID, campaignID string) error {
	var owned bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM campaigns WHERE id = $1 AND user_id = $2)`,
		campaignID, userID,
	).Scan(&owned); err != nil {
		return fmt.Errorf("check campaign: %w", err)
	}
	if !owned {
		return form.ErrCampaignNotFound
	}

	// Deleting an absent form is a no-op; the campaign simply keeps the
	// default form.
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM campaign_forms WHERE campaign_id = $1`, campaignID,
	); err != nil {
		return fmt.Errorf("delete form: %w", err)
	}
	return nil
}
