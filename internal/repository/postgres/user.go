// Package postgres implements the service repository contracts against
// PostgreSQL using database/sql and lib/pq. Queries scope every per-tenant
// row with "AND user_id = $n" so foreign rows are indistinguishable from
// missing ones.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/meunps/platform/internal/domain"
	"github.com/meunps/platform/internal/service/user"
)

// UserRepo implements user.Repository against PostgreSQL.
type UserRepo struct{ db *sql.DB }

// NewUserRepo creates a Postgres-backed user repository.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, email, password_hash, name, role, is_deactivated, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, false, NOW(), NOW())
	`, u.ID, u.Email, u.PasswordHash, u.Name, u.Role)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return user.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *UserRepo) ByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, name, role, is_deactivated, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email))
}

func (r *UserRepo) ByID(ctx context.Context, id string) (*domain.User, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, name, role, is_deactivated, created_at, updated_at
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepo) scanOne(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role,
		&u.IsDeactivated, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, user.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}
