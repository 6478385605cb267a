package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Young-Flame/PhotoYo/internal/domain/user"
	"github.com/Young-Flame/PhotoYo/internal/middleware"
	"github.com/Young-Flame/PhotoYo/internal/pkg/response"
)

// Handler handles admin user management requests
type Handler struct {
	service *Service
}

// NewHandler creates a new admin handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListUsers handles GET /api/v1/admin/users
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context(), middleware.GetActor(r.Context()))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotAdmin):
			response.Forbidden(w, "Admin access required")
		default:
			log.Error().Err(err).Msg("Failed to list users")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, users)
}

// ToggleRole handles POST /api/v1/admin/users/{id}/toggle-role
func (h *Handler) ToggleRole(w http.ResponseWriter, r *http.Request) {
	id, ok := userID(w, r)
	if !ok {
		return
	}

	summary, err := h.service.ToggleRole(r.Context(), middleware.GetActor(r.Context()), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotAdmin):
			response.Forbidden(w, "Admin access required")
		case errors.Is(err, user.ErrUserNotFound):
			response.NotFound(w, "User not found")
		default:
			log.Error().Err(err).Int64("user_id", id).Msg("Failed to toggle role")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, summary)
}

// DeleteUser handles DELETE /api/v1/admin/users/{id}
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	id, ok := userID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteUser(r.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, ErrNotAdmin):
			response.Forbidden(w, "Admin access required")
		case errors.Is(err, user.ErrSelfDelete):
			response.Forbidden(w, "You cannot delete your own account")
		case errors.Is(err, user.ErrUserNotFound):
			response.NotFound(w, "User not found")
		default:
			log.Error().Err(err).Int64("user_id", id).Msg("Failed to delete user")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

func userID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid user ID")
		return 0, false
	}
	return id, true
}
