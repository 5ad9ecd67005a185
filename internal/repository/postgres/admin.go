package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/service/admin"
)

// AdminRepo implements admin.Repository against PostgreSQL.
type AdminRepo struct{ db *sql.DB }

// NewAdminRepo creates a Postgres-backed admin repository.
func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{db: db} }

func (r *AdminRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, email, password_hash, name, role, is_deactivated, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role,
			&u.IsDeactivated, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// Deactivate flags the user and stops their campaigns in one transaction,
// so the public submit path never sees a half-applied deactivation.
func (r *AdminRepo) Deactivate(ctx context.Context, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin deactivate: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		UPDATE users SET is_deactivated = true, updated_at = NOW() WHERE id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return admin.ErrUserNotFound
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE campaigns SET active = false, updated_at = NOW() WHERE user_id = $1
	`, userID); err != nil {
		return fmt.Errorf("deactivate campaigns: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit deactivate: %w", err)
	}
	return nil
}

// Reactivate clears the flag only. Campaigns stay inactive until the owner
// re-enables them.
func (r *AdminRepo) Reactivate(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET is_deactivated = false, updated_at = NOW() WHERE id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("reactivate user: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return admin.ErrUserNotFound
	}
	return nil
}

// DeleteUser removes the account row; ON DELETE CASCADE takes campaigns,
// responses, contacts, taxonomies and the singleton rows with it.
func (r *AdminRepo) DeleteUser(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return admin.ErrUserNotFound
	}
	return nil
}

func (r *AdminRepo) AdminPermissions(ctx context.Context, userID string) (domain.AdminPermissions, bool, error) {
	var perms string
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(permissions::text,'{}')
		FROM user_admins
		WHERE user_id = $1
	`, userID).Scan(&perms)
	if err == sql.ErrNoRows {
		return domain.AdminPermissions{}, false, nil
	}
	if err != nil {
		return domain.AdminPermissions{}, false, fmt.Errorf("get admin permissions: %w", err)
	}

	var p domain.AdminPermissions
	if err := json.Unmarshal([]byte(perms), &p); err != nil {
		return domain.AdminPermissions{}, false, fmt.Errorf("decode admin permissions: %w", err)
	}
	return p, true, nil
}
