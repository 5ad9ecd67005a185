package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/service/campaign"
)

// CampaignRepo implements campaign.Repository against PostgreSQL.
// survey_customization and automation live in JSONB columns and are
// marshalled here; the domain structs stay database-free.
type CampaignRepo struct{ db *sql.DB }

// NewCampaignRepo creates a Postgres-backed campaign repository.
func NewCampaignRepo(db *sql.DB) *CampaignRepo { return &CampaignRepo{db: db} }

const campaignColumns = `
	id, user_id, name, COALESCE(description,''), start_date, end_date, active,
	default_source_id, default_situation_id, default_group_id,
	COALESCE(survey_customization::text,'{}'), COALESCE(automation::text,'{}'),
	created_at, updated_at`

func (r *CampaignRepo) Get(ctx context.Context, userID, id string) (*domain.Campaign, error) {
	return scanCampaign(r.db.QueryRowContext(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns
		WHERE id = $1 AND user_id = $2
	`, id, userID))
}

func (r *CampaignRepo) GetPublic(ctx context.Context, id string) (*domain.Campaign, error) {
	return scanCampaign(r.db.QueryRowContext(ctx, `
		SELECT `+campaignColumns+`
		FROM campaigns
		WHERE id = $1
	`, id))
}

func (r *CampaignRepo) List(ctx context.Context, userID string, f campaign.ListFilter) ([]domain.Campaign, int, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	countQ := `SELECT COUNT(*) FROM campaigns WHERE user_id = $1`
	countArgs := []interface{}{userID}
	if f.Active != nil {
		countQ += ` AND active = $2`
		countArgs = append(countArgs, *f.Active)
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQ, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count campaigns: %w", err)
	}

	q := `SELECT ` + campaignColumns + ` FROM campaigns WHERE user_id = $1`
	args := []interface{}{userID}
	idx := 2
	if f.Active != nil {
		q += fmt.Sprintf(" AND active = $%d", idx)
		args = append(args, *f.Active)
		idx++
	}
	q += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var out []domain.Campaign
	for rows.Next() {
		c, err := scanCampaignRow(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *c)
	}
	return out, total, rows.Err()
}

func (r *CampaignRepo) Create(ctx context.Context, c *domain.Campaign) (string, error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	custom, err := json.Marshal(c.Customization)
	if err != nil {
		return "", fmt.Errorf("marshal customization: %w", err)
	}
	auto, err := json.Marshal(c.Automation)
	if err != nil {
		return "", fmt.Errorf("marshal automation: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO campaigns
			(id, user_id, name, description, start_date, end_date, active,
			 default_source_id, default_situation_id, default_group_id,
			 survey_customization, automation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW(), NOW())
	`, c.ID, c.UserID, c.Name, c.Description, c.StartDate, c.EndDate, c.Active,
		c.DefaultSourceID, c.DefaultSituationID, c.DefaultGroupID, custom, auto)
	if err != nil {
		return "", fmt.Errorf("create campaign: %w", err)
	}
	return c.ID, nil
}

func (r *CampaignRepo) Update(ctx context.Context, userID, id string, u campaign.UpdateFields) error {
	sets := []string{}
	args := []interface{}{}
	idx := 1
	add := func(col string, val interface{}) {
		sets = append(sets, fmt.Sprintf("%s = $%d", col, idx))
		args = append(args, val)
		idx++
	}

	if u.Name != nil {
		add("name", *u.Name)
	}
	if u.Description != nil {
		add("description", *u.Description)
	}
	if u.StartDate != nil {
		add("start_date", *u.StartDate)
	}
	if u.EndDate != nil {
		add("end_date", *u.EndDate)
	}
	if u.Active != nil {
		add("active", *u.Active)
	}
	if u.DefaultSourceID != nil {
		add("default_source_id", *u.DefaultSourceID)
	}
	if u.DefaultSituationID != nil {
		add("default_situation_id", *u.DefaultSituationID)
	}
	if u.DefaultGroupID != nil {
		add("default_group_id", *u.DefaultGroupID)
	}
	if u.Customization != nil {
		b, err := json.Marshal(u.Customization)
		if err != nil {
			return fmt.Errorf("marshal customization: %w", err)
		}
		add("survey_customization", b)
	}
	if u.Automation != nil {
		b, err := json.Marshal(u.Automation)
		if err != nil {
			return fmt.Errorf("marshal automation: %w", err)
		}
		add("automation", b)
	}

	if len(sets) == 0 {
		return nil
	}

	sets = append(sets, "updated_at = NOW()")
	q := fmt.Sprintf("UPDATE campaigns SET %s WHERE id = $%d AND user_id = $%d",
		joinComma(sets), idx, idx+1)
	args = append(args, id, userID)

	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return fmt.Errorf("update campaign: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return campaign.ErrNotFound
	}
	return nil
}

func (r *CampaignRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM campaigns
		WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return campaign.ErrNotFound
	}
	return nil
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCampaign(row *sql.Row) (*domain.Campaign, error) {
	c, err := scanCampaignRow(row)
	if err == sql.ErrNoRows {
		return nil, campaign.ErrNotFound
	}
	return c, err
}

func scanCampaignRow(row rowScanner) (*domain.Campaign, error) {
	c := &domain.Campaign{}
	var custom, auto string
	err := row.Scan(
		&c.ID, &c.UserID, &c.Name, &c.Description, &c.StartDate, &c.EndDate, &c.Active,
		&c.DefaultSourceID, &c.DefaultSituationID, &c.DefaultGroupID,
		&custom, &auto, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("scan campaign: %w", err)
	}
	if err := json.Unmarshal([]byte(custom), &c.Customization); err != nil {
		return nil, fmt.Errorf("decode customization: %w", err)
	}
	if err := json.Unmarshal([]byte(auto), &c.Automation); err != nil {
		return nil, fmt.Errorf("decode automation: %w", err)
	}
	return c, nil
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
