package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Young-Flame/PhotoYo/internal/pkg/policy"
	"github.com/Young-Flame/PhotoYo/internal/pkg/response"
)

type contextKey string

const actorKey contextKey = "actor"

// SessionResolver maps an opaque session token to the actor cached at login.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*policy.Actor, error)
}

// ExtractToken pulls the bearer token from the Authorization header.
// Returns "" when absent or malformed.
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return parts[1]
}

// RequireAuth returns middleware that resolves the session and rejects
// anonymous requests with an explicit 401.
func RequireAuth(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := ExtractToken(r)
			if token == "" {
				response.Unauthorized(w, "Please login to access this resource")
				return
			}

			actor, err := sessions.Resolve(r.Context(), token)
			if err != nil || actor == nil {
				response.Unauthorized(w, "Invalid or expired session")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

// OptionalAuth resolves the session when a token is present but lets
// anonymous requests through with no actor in context.
func OptionalAuth(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if token := ExtractToken(r); token != "" {
				if actor, err := sessions.Resolve(r.Context(), token); err == nil && actor != nil {
					r = r.WithContext(WithActor(r.Context(), actor))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin returns middleware that checks the resolved actor's role.
// Must be mounted after RequireAuth.
func RequireAdmin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !GetActor(r.Context()).IsAdmin() {
				response.Forbidden(w, "Admin access required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithActor attaches the actor to the context
func WithActor(ctx context.Context, actor *policy.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActor extracts the actor from context. Returns nil for anonymous
// requests.
func GetActor(ctx context.Context) *policy.Actor {
	if actor, ok := ctx.Value(actorKey).(*policy.Actor); ok {
		return actor
	}
	return nil
}
