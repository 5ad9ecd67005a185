package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/service/contact"
)

// ContactRepo implements contact.Repository against PostgreSQL. group_ids
// and tags are JSONB arrays; group filtering uses the containment operator.
type ContactRepo struct{ db *sql.DB }

// NewContactRepo creates a Postgres-backed contact repository.
func NewContactRepo(db *sql.DB) *ContactRepo { return &ContactRepo{db: db} }

const contactColumns = `
	id, user_id, name, COALESCE(email,''), COALESCE(phone,''),
	COALESCE(group_ids::text,'[]'), COALESCE(tags::text,'[]'),
	COALESCE(notes,''), created_at, updated_at`

func (r *ContactRepo) List(ctx context.Context, userID string, f contact.ListFilter) ([]domain.Contact, int, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	where := ` WHERE user_id = $1`
	args := []interface{}{userID}
	idx := 2
	if f.Search != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR email ILIKE $%d)", idx, idx)
		args = append(args, "%"+f.Search+"%")
		idx++
	}
	if f.GroupID != "" {
		where += fmt.Sprintf(" AND group_ids @> $%d", idx)
		b, _ := json.Marshal([]string{f.GroupID})
		args = append(args, b)
		idx++
	}
	if f.Tag != "" {
		where += fmt.Sprintf(" AND tags @> $%d", idx)
		b, _ := json.Marshal([]string{f.Tag})
		args = append(args, b)
		idx++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM contacts`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count contacts: %w", err)
	}

	q := `SELECT ` + contactColumns + ` FROM contacts` + where +
		fmt.Sprintf(" ORDER BY name ASC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, f.Offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	var out []domain.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *c)
	}
	return out, total, rows.Err()
}

func (r *ContactRepo) Get(ctx context.Context, userID, id string) (*domain.Contact, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+contactColumns+`
		FROM contacts
		WHERE id = $1 AND user_id = $2
	`, id, userID)

	c, err := scanContact(row)
	if err == sql.ErrNoRows {
		return nil, contact.ErrNotFound
	}
	return c, err
}

func (r *ContactRepo) Create(ctx context.Context, c *domain.Contact) error {
	groupIDs, err := json.Marshal(c.GroupIDs)
	if err != nil {
		return fmt.Errorf("marshal group ids: %w", err)
	}
	tags, err := json.Marshal(c.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO contacts (id, user_id, name, email, phone, group_ids, tags, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`, c.ID, c.UserID, c.Name, c.Email, c.Phone, groupIDs, tags, c.Notes)
	if err != nil {
		return fmt.Errorf("create contact: %w", err)
	}
	return nil
}

func (r *ContactRepo) Update(ctx context.Context, c *domain.Contact) error {
	groupIDs, err := json.Marshal(c.GroupIDs)
	if err != nil {
		return fmt.Errorf("marshal group ids: %w", err)
	}
	tags, err := json.Marshal(c.Tags)
	if err != nil {
		return fmt.Errorf("marshal tags: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE contacts
		SET name = $1, email = $2, phone = $3, group_ids = $4, tags = $5, notes = $6, updated_at = NOW()
		WHERE id = $7 AND user_id = $8
	`, c.Name, c.Email, c.Phone, groupIDs, tags, c.Notes, c.ID, c.UserID)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return contact.ErrNotFound
	}
	return nil
}

func (r *ContactRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM contacts WHERE id = $1 AND user_id = $2
	`, id, userID)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return contact.ErrNotFound
	}
	return nil
}

func scanContact(row rowScanner) (*domain.Contact, error) {
	c := &domain.Contact{}
	var groupIDs, tags string
	err := row.Scan(&c.ID, &c.UserID, &c.Name, &c.Email, &c.Phone,
		&groupIDs, &tags, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, fmt.Errorf("scan contact: %w", err)
	}
	if err := json.Unmarshal([]byte(groupIDs), &c.GroupIDs); err != nil {
		return nil, fmt.Errorf("decode group ids: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &c.Tags); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	return c, nil
}
