package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Young-Flame/PhotoYo/internal/domain/user"
	"github.com/Young-Flame/PhotoYo/internal/pkg/password"
	"github.com/Young-Flame/PhotoYo/internal/pkg/policy"
)

// Service handles registration, login and session lifecycle
type Service struct {
	users       user.Repository
	sessions    SessionRepository
	minPassword int
}

// NewService creates a new auth service
func NewService(users user.Repository, sessions SessionRepository, minPassword int) *Service {
	return &Service{
		users:       users,
		sessions:    sessions,
		minPassword: minPassword,
	}
}

// Register creates an account and opens a session for it
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if len(req.Password) < s.minPassword {
		return nil, ErrPasswordTooShort
	}

	hash, err := password.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hash,
		Role:         policy.RoleUser,
	}

	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	log.Info().Int64("user_id", u.ID).Str("email", u.Email).Msg("User registered")

	return s.openSession(ctx, u)
}

// Login verifies credentials and opens a fresh session
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	u, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if !password.Verify(req.Password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	log.Info().Int64("user_id", u.ID).Msg("User logged in")

	return s.openSession(ctx, u)
}

// Logout revokes the session behind the token. Unknown tokens are a no-op.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}

// Me returns the current database state of the actor's account
func (s *Service) Me(ctx context.Context, actor *policy.Actor) (*UserResponse, error) {
	u, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	resp := toUserResponse(u)
	return &resp, nil
}

// UpdateProfile edits name, phone and optionally the password
func (s *Service) UpdateProfile(ctx context.Context, actor *policy.Actor, req *UpdateProfileRequest) (*UserResponse, error) {
	u, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, user.ErrUserNotFound
	}

	u.Name = strings.TrimSpace(req.Name)
	u.Phone = strings.TrimSpace(req.Phone)

	if req.NewPassword != "" {
		if len(req.NewPassword) < s.minPassword {
			return nil, ErrPasswordTooShort
		}
		hash, err := password.Hash(req.NewPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		u.PasswordHash = hash
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}

	resp := toUserResponse(u)
	return &resp, nil
}

// Resolve implements middleware.SessionResolver
func (s *Service) Resolve(ctx context.Context, token string) (*policy.Actor, error) {
	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	return &policy.Actor{
		ID:   sess.UserID,
		Name: sess.UserName,
		Role: sess.Role,
	}, nil
}

func (s *Service) openSession(ctx context.Context, u *user.User) (*AuthResponse, error) {
	sess := &Session{
		Token:     uuid.New().String(),
		UserID:    u.ID,
		UserName:  u.Name,
		Role:      u.Role,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &AuthResponse{
		Token: sess.Token,
		User:  toUserResponse(u),
	}, nil
}
