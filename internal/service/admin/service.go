// Package admin implements the user-lifecycle operations behind the admin
// panel: listing accounts, deactivation with campaign fan-out, reactivation
// and hard deletion.
package admin

import (
	"context"
	"log"

	"github.com/meunps/platform/internal/domain"
)

// Service implements admin business logic.
type Service struct {
	repo Repository
}

// NewService creates an admin service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// ListUsers returns every account.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}

// DeactivateUser flags the target and stops all their campaigns from
// accepting public submissions. Acting on yourself is rejected.
func (s *Service) DeactivateUser(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return ErrSelfAction
	}
	if err := s.repo.Deactivate(ctx, targetID); err != nil {
		return err
	}
	log.Printf("[admin.Service] User %s deactivated by %s", targetID, actorID)
	return nil
}

// ReactivateUser clears the deactivation flag. Campaigns stay inactive;
// the owner re-enables them one by one.
func (s *Service) ReactivateUser(ctx context.Context, actorID, targetID string) error {
	if err := s.repo.Reactivate(ctx, targetID); err != nil {
		return err
	}
	log.Printf("[admin.Service] User %s reactivated by %s", targetID, actorID)
	return nil
}

// DeleteUser hard-deletes the target and everything they own. Acting on
// yourself is rejected.
func (s *Service) DeleteUser(ctx context.Context, actorID, targetID string) error {
	if actorID == targetID {
		return ErrSelfAction
	}
	if err := s.repo.DeleteUser(ctx, targetID); err != nil {
		return err
	}
	log.Printf("[admin.Service] User %s deleted by %s", targetID, actorID)
	return nil
}

// AdminPermissions satisfies auth.AdminLoader for the admin route gate.
func (s *Service) AdminPermissions(ctx context.Context, userID string) (domain.AdminPermissions, bool, error) {
	return s.repo.AdminPermissions(ctx, userID)
}
