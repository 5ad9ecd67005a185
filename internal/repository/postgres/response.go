package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/service/response"
)

// ResponseRepo implements response.Repository against PostgreSQL.
type ResponseRepo struct{ db *sql.DB }

// NewResponseRepo creates a Postgres-backed response repository.
func NewResponseRepo(db *sql.DB) *ResponseRepo { return &ResponseRepo{db: db} }

// Submit checks the campaign and inserts the response in one transaction.
// Without the shared transaction a deactivation landing between the check
// and the insert would let a response into a closed campaign.
func (r *ResponseRepo) Submit(ctx context.Context, resp *domain.NpsResponse) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin submit: %w", err)
	}
	defer tx.Rollback()

	var c domain.Campaign
	err = tx.QueryRowContext(ctx, `
		SELECT active, start_date, end_date
		FROM campaigns
		WHERE id = $1
		FOR UPDATE
	`, resp.CampaignID).Scan(&c.Active, &c.StartDate, &c.EndDate)
	if err == sql.ErrNoRows {
		return response.ErrCampaignNotFound
	}
	if err != nil {
		return fmt.Errorf("check campaign: %w", err)
	}
	if !c.AcceptsSubmissionsAt(time.Now()) {
		return response.ErrCampaignClosed
	}

	formResponses, err := json.Marshal(resp.FormResponses)
	if err != nil {
		return fmt.Errorf("marshal form responses: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO nps_responses
			(id, campaign_id, score, feedback, source_id, situation_id, group_id,
			 form_responses, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
	`, resp.ID, resp.CampaignID, resp.Score, resp.Feedback,
		resp.SourceID, resp.SituationID, resp.GroupID, formResponses)
	if err != nil {
		return fmt.Errorf("insert response: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit submit: %w", err)
	}
	return nil
}

func (r *ResponseRepo) ListByCampaign(ctx context.Context, userID, campaignID string, f response.ListFilter) ([]domain.NpsResponse, error) {
	var owned bool
	if err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM campaigns WHERE id = $1 AND user_id = $2)`,
		campaignID, userID,
	).Scan(&owned); err != nil {
		return nil, fmt.Errorf("check campaign: %w", err)
	}
	if !owned {
		return nil, response.ErrCampaignNotFound
	}

	q := `
		SELECT id, campaign_id, score, COALESCE(feedback,''),
		       source_id, situation_id, group_id,
		       COALESCE(form_responses::text,'{}'), created_at
		FROM nps_responses
		WHERE campaign_id = $1`
	args := []interface{}{campaignID}
	idx := 2
	if f.From != nil {
		q += fmt.Sprintf(" AND created_at >= $%d", idx)
		args = append(args, *f.From)
		idx++
	}
	if f.To != nil {
		q += fmt.Sprintf(" AND created_at < $%d", idx)
		args = append(args, *f.To)
		idx++
	}
	if f.SourceID != nil {
		q += fmt.Sprintf(" AND source_id = $%d", idx)
		args = append(args, *f.SourceID)
		idx++
	}
	if f.GroupID != nil {
		q += fmt.Sprintf(" AND group_id = $%d", idx)
		args = append(args, *f.GroupID)
		idx++
	}
	q += " ORDER BY created_at ASC"
	// No LIMIT when unpaginated: score aggregation must see every row.
	if f.Limit > 0 {
		q += fmt.Sprintf(" LIMIT $%d", idx)
		args = append(args, f.Limit)
		idx++
	}
	if f.Offset > 0 {
		q += fmt.Sprintf(" OFFSET $%d", idx)
		args = append(args, f.Offset)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer rows.Close()

	var out []domain.NpsResponse
	for rows.Next() {
		var resp domain.NpsResponse
		var formResponses string
		if err := rows.Scan(
			&resp.ID, &resp.CampaignID, &resp.Score, &resp.Feedback,
			&resp.SourceID, &resp.SituationID, &resp.GroupID,
			&formResponses, &resp.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		if err := json.Unmarshal([]byte(formResponses), &resp.FormResponses); err != nil {
			return nil, fmt.Errorf("decode form responses: %w", err)
		}
		out = append(out, resp)
	}
	return out, rows.Err()
}

func (r *ResponseRepo) Delete(ctx context.Context, userID, responseID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM nps_responses
		WHERE id = $1
		  AND campaign_id IN (SELECT id FROM campaigns WHERE user_id = $2)
	`, responseID, userID)
	if err != nil {
		return fmt.Errorf("delete response: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return response.ErrNotFound
	}
	return nil
}
