package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/service/taxonomy"
)

// taxonomyTables maps a kind to its table. The three tables share one shape;
// the kind only selects which one a query hits. Callers validate the kind,
// but an unmapped value still fails loudly instead of interpolating.
var taxonomyTables = map[domain.TaxonomyKind]string{
	domain.TaxonomySource:    "sources",
	domain.TaxonomySituation: "situations",
	domain.TaxonomyGroup:     "groups",
}

// TaxonomyRepo implements taxonomy.Repository against PostgreSQL.
type TaxonomyRepo struct{ db *sql.DB }

// NewTaxonomyRepo creates a Postgres-backed taxonomy repository.
func NewTaxonomyRepo(db *sql.DB) *TaxonomyRepo { return &TaxonomyRepo{db: db} }

func taxonomyTable(kind domain.TaxonomyKind) (string, error) {
	t, ok := taxonomyTables[kind]
	if !ok {
		return "", taxonomy.ErrUnknownKind
	}
	return t, nil
}

func (r *TaxonomyRepo) List(ctx context.Context, kind domain.TaxonomyKind, userID string) ([]domain.Taxonomy, error) {
	table, err := taxonomyTable(kind)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, COALESCE(description,''), COALESCE(color,''), created_at, updated_at
		FROM `+table+`
		WHERE user_id = $1
		ORDER BY name ASC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	var out []domain.Taxonomy
	for rows.Next() {
		var t domain.Taxonomy
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &t.Color,
			&t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		t.Kind = kind
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TaxonomyRepo) Get(ctx context.Context, kind domain.TaxonomyKind, userID, id string) (*domain.Taxonomy, error) {
	table, err := taxonomyTable(kind)
	if err != nil {
		return nil, err
	}

	t := &domain.Taxonomy{Kind: kind}
	err = r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, COALESCE(description,''), COALESCE(color,''), created_at, updated_at
		FROM `+table+`
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(&t.ID, &t.UserID, &t.Name, &t.Description, &t.Color,
		&t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, taxonomy.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", table, err)
	}
	return t, nil
}

func (r *TaxonomyRepo) Create(ctx context.Context, t *domain.Taxonomy) error {
	table, err := taxonomyTable(t.Kind)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO `+table+` (id, user_id, name, description, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`, t.ID, t.UserID, t.Name, t.Description, t.Color)
	if err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}
	return nil
}

func (r *TaxonomyRepo) Update(ctx context.Context, t *domain.Taxonomy) error {
	table, err := taxonomyTable(t.Kind)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE `+table+`
		SET name = $1, description = $2, color = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5
	`, t.Name, t.Description, t.Color, t.ID, t.UserID)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return taxonomy.ErrNotFound
	}
	return nil
}

func (r *TaxonomyRepo) Delete(ctx context.Context, kind domain.TaxonomyKind, userID, id string) error {
	table, err := taxonomyTable(kind)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		DELETE FROM `+table+` WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return taxonomy.ErrNotFound
	}
	return nil
}
