package auth

import (
	"context"
	"testing"
	"time"

	"github.com/Young-Flame/PhotoYo/internal/domain/user"
	"github.com/Young-Flame/PhotoYo/internal/pkg/password"
	"github.com/Young-Flame/PhotoYo/internal/pkg/policy"
)

type fakeUserRepo struct {
	users  map[int64]*user.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*user.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return user.ErrEmailTaken
		}
	}
	u.ID = f.nextID
	u.CreatedAt = time.Now()
	f.nextID++
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*user.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, u *user.User) error {
	if _, ok := f.users[u.ID]; !ok {
		return user.ErrUserNotFound
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) UpdateRole(_ context.Context, id int64, role string) error {
	u, ok := f.users[id]
	if !ok {
		return user.ErrUserNotFound
	}
	u.Role = role
	return nil
}

func (f *fakeUserRepo) List(_ context.Context) ([]*user.User, error) {
	out := []*user.User{}
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id int64) ([]string, error) {
	if _, ok := f.users[id]; !ok {
		return nil, user.ErrUserNotFound
	}
	delete(f.users, id)
	return nil, nil
}

func (f *fakeUserRepo) CountByRole(_ context.Context, role string) (int, error) {
	n := 0
	for _, u := range f.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

type fakeSessionRepo struct {
	sessions map[string]*Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*Session{}}
}

func (f *fakeSessionRepo) Create(_ context.Context, s *Session) error {
	f.sessions[s.Token] = s
	return nil
}

func (f *fakeSessionRepo) Get(_ context.Context, token string) (*Session, error) {
	s, ok := f.sessions[token]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessionRepo) Delete(_ context.Context, token string) error {
	delete(f.sessions, token)
	return nil
}

func newTestService() (*Service, *fakeUserRepo, *fakeSessionRepo) {
	users := newFakeUserRepo()
	sessions := newFakeSessionRepo()
	return NewService(users, sessions, 6), users, sessions
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account and session", func(t *testing.T) {
		svc, users, sessions := newTestService()

		resp, err := svc.Register(ctx, &RegisterRequest{
			Name:            "Alice",
			Email:           "Alice@Example.com",
			Password:        "secret1",
			ConfirmPassword: "secret1",
		})
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		if resp.Token == "" {
			t.Error("expected a session token")
		}
		if resp.User.Role != policy.RoleUser {
			t.Errorf("role = %q, want %q", resp.User.Role, policy.RoleUser)
		}
		if resp.User.Email != "alice@example.com" {
			t.Errorf("email = %q, want lowercased", resp.User.Email)
		}

		stored := users.users[resp.User.ID]
		if stored.PasswordHash == "secret1" {
			t.Error("password stored in plaintext")
		}
		if !password.Verify("secret1", stored.PasswordHash) {
			t.Error("stored hash does not verify original password")
		}
		if _, ok := sessions.sessions[resp.Token]; !ok {
			t.Error("session not persisted")
		}
	})

	t.Run("mismatched confirmation rejected", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Register(ctx, &RegisterRequest{
			Name:            "Alice",
			Email:           "a@b.com",
			Password:        "secret1",
			ConfirmPassword: "secret2",
		})
		if err != ErrPasswordMismatch {
			t.Errorf("error = %v, want ErrPasswordMismatch", err)
		}
	})

	t.Run("short password rejected", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Register(ctx, &RegisterRequest{
			Name:            "Alice",
			Email:           "a@b.com",
			Password:        "abc",
			ConfirmPassword: "abc",
		})
		if err != ErrPasswordTooShort {
			t.Errorf("error = %v, want ErrPasswordTooShort", err)
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		svc, _, _ := newTestService()

		req := &RegisterRequest{
			Name: "Alice", Email: "a@b.com",
			Password: "secret1", ConfirmPassword: "secret1",
		}
		if _, err := svc.Register(ctx, req); err != nil {
			t.Fatalf("first Register() error = %v", err)
		}
		if _, err := svc.Register(ctx, req); err != user.ErrEmailTaken {
			t.Errorf("error = %v, want ErrEmailTaken", err)
		}
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, svc *Service) *AuthResponse {
		t.Helper()
		resp, err := svc.Register(ctx, &RegisterRequest{
			Name: "Alice", Email: "a@b.com",
			Password: "secret1", ConfirmPassword: "secret1",
		})
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		return resp
	}

	t.Run("valid credentials issue a new token", func(t *testing.T) {
		svc, _, _ := newTestService()
		first := register(t, svc)

		resp, err := svc.Login(ctx, &LoginRequest{Email: "a@b.com", Password: "secret1"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if resp.Token == first.Token {
			t.Error("login should mint a fresh token")
		}
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		svc, _, _ := newTestService()
		register(t, svc)

		_, err := svc.Login(ctx, &LoginRequest{Email: "a@b.com", Password: "wrong"})
		if err != ErrInvalidCredentials {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email rejected", func(t *testing.T) {
		svc, _, _ := newTestService()

		_, err := svc.Login(ctx, &LoginRequest{Email: "nobody@b.com", Password: "secret1"})
		if err != ErrInvalidCredentials {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestLogoutRevokesSession(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	resp, err := svc.Register(ctx, &RegisterRequest{
		Name: "Alice", Email: "a@b.com",
		Password: "secret1", ConfirmPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if _, err := svc.Resolve(ctx, resp.Token); err != nil {
		t.Fatalf("Resolve() before logout error = %v", err)
	}

	if err := svc.Logout(ctx, resp.Token); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	if _, err := svc.Resolve(ctx, resp.Token); err != ErrSessionNotFound {
		t.Errorf("Resolve() after logout error = %v, want ErrSessionNotFound", err)
	}
}

func TestResolveKeepsCachedRole(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newTestService()

	resp, err := svc.Register(ctx, &RegisterRequest{
		Name: "Alice", Email: "a@b.com",
		Password: "secret1", ConfirmPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	// Promote the account after the session was cached.
	if err := users.UpdateRole(ctx, resp.User.ID, policy.RoleAdmin); err != nil {
		t.Fatalf("UpdateRole() error = %v", err)
	}

	actor, err := svc.Resolve(ctx, resp.Token)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if actor.Role != policy.RoleUser {
		t.Errorf("role = %q, want cached %q until next login", actor.Role, policy.RoleUser)
	}

	// A fresh login picks up the new role.
	fresh, err := svc.Login(ctx, &LoginRequest{Email: "a@b.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if fresh.User.Role != policy.RoleAdmin {
		t.Errorf("role after relogin = %q, want %q", fresh.User.Role, policy.RoleAdmin)
	}
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, users, _ := newTestService()

	resp, err := svc.Register(ctx, &RegisterRequest{
		Name: "Alice", Email: "a@b.com",
		Password: "secret1", ConfirmPassword: "secret1",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	actor := &policy.Actor{ID: resp.User.ID, Name: resp.User.Name, Role: resp.User.Role}

	t.Run("updates name and phone", func(t *testing.T) {
		updated, err := svc.UpdateProfile(ctx, actor, &UpdateProfileRequest{
			Name:  "Alice B",
			Phone: "+7 700 000 0000",
		})
		if err != nil {
			t.Fatalf("UpdateProfile() error = %v", err)
		}
		if updated.Name != "Alice B" || updated.Phone != "+7 700 000 0000" {
			t.Errorf("profile = %+v", updated)
		}
	})

	t.Run("changes password when provided", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, actor, &UpdateProfileRequest{
			Name:        "Alice B",
			NewPassword: "newsecret",
		})
		if err != nil {
			t.Fatalf("UpdateProfile() error = %v", err)
		}
		stored := users.users[actor.ID]
		if !password.Verify("newsecret", stored.PasswordHash) {
			t.Error("new password does not verify")
		}
	})

	t.Run("rejects short new password", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, actor, &UpdateProfileRequest{
			Name:        "Alice B",
			NewPassword: "abc",
		})
		if err != ErrPasswordTooShort {
			t.Errorf("error = %v, want ErrPasswordTooShort", err)
		}
	})
}
