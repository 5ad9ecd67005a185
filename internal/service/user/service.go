// Package user implements account registration and login on top of bcrypt
// hashing and JWT issuance.
package user

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/meunps/platform/internal/auth"
	"github.com/meunps/platform/internal/domain"
)

// Service implements account business logic.
type Service struct {
	repo       Repository
	tokens     *auth.TokenManager
	bcryptCost int
}

// NewService creates a user service backed by the given repository.
func NewService(repo Repository, tokens *auth.TokenManager, bcryptCost int) *Service {
	return &Service{repo: repo, tokens: tokens, bcryptCost: bcryptCost}
}

// Register creates a new account with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, email, password, name string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" || name == "" {
		return nil, fmt.Errorf("email, password and name are required")
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Printf("[user.Service] Registered %s (%s)", u.Email, u.ID)
	return u, nil
}

// Login verifies credentials and issues a bearer token. Deactivated
// accounts cannot log in.
func (s *Service) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	u, err := s.repo.ByEmail(ctx, email)
	if err == ErrNotFound {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, err
	}

	if !auth.CheckPassword(u.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}
	if u.IsDeactivated {
		return "", nil, ErrDeactivated
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, u, nil
}

// ByID loads a user record. Satisfies auth.UserLoader for the bearer
// middleware.
func (s *Service) ByID(ctx context.Context, id string) (*domain.User, error) {
	return s.repo.ByID(ctx, id)
}
