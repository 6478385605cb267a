package admin

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Young-Flame/PhotoYo/internal/domain/user"
	"github.com/Young-Flame/PhotoYo/internal/pkg/policy"
	"github.com/Young-Flame/PhotoYo/internal/pkg/storage"
)

// Service handles admin user management
type Service struct {
	users user.Repository
	store storage.Storage
}

// NewService creates a new admin service
func NewService(users user.Repository, store storage.Storage) *Service {
	return &Service{users: users, store: store}
}

// ListUsers returns every account, newest first. Admin only.
func (s *Service) ListUsers(ctx context.Context, actor *policy.Actor) ([]UserSummary, error) {
	if !policy.CanManageUsers(actor) {
		return nil, ErrNotAdmin
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, toSummary(u))
	}
	return out, nil
}

// ToggleRole flips an account between user and admin. Admin only. Toggling
// twice restores the original role.
func (s *Service) ToggleRole(ctx context.Context, actor *policy.Actor, id int64) (*UserSummary, error) {
	if !policy.CanManageUsers(actor) {
		return nil, ErrNotAdmin
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	newRole := policy.RoleAdmin
	if u.Role == policy.RoleAdmin {
		newRole = policy.RoleUser
	}

	if err := s.users.UpdateRole(ctx, id, newRole); err != nil {
		return nil, err
	}
	u.Role = newRole

	log.Info().Int64("user_id", id).Str("role", newRole).Msg("User role toggled")

	summary := toSummary(u)
	return &summary, nil
}

// DeleteUser removes an account with its photos and comments. An admin can
// never delete their own account. Stored files are cleaned up best-effort
// after the database commit.
func (s *Service) DeleteUser(ctx context.Context, actor *policy.Actor, id int64) error {
	if !policy.CanManageUsers(actor) {
		return ErrNotAdmin
	}
	if !policy.CanDeleteUser(actor, id) {
		return user.ErrSelfDelete
	}

	keys, err := s.users.Delete(ctx, id)
	if err != nil {
		return err
	}

	for _, key := range keys {
		if err := s.store.Delete(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("Failed to remove stored file")
		}
	}

	log.Info().Int64("user_id", id).Int64("actor_id", actor.ID).Msg("User deleted")

	return nil
}
