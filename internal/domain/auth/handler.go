package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Young-Flame/PhotoYo/internal/domain/user"
	"github.com/Young-Flame/PhotoYo/internal/middleware"
	"github.com/Young-Flame/PhotoYo/internal/pkg/response"
	"github.com/Young-Flame/PhotoYo/internal/pkg/validator"
)

// Handler handles auth HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates a new auth handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register handles POST /api/v1/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	// Trim before validating so whitespace-only fields fail "required"
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)

	if fields := validator.Validate(&req); fields != nil {
		response.ValidationError(w, fields)
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPasswordMismatch):
			response.BadRequest(w, "Passwords do not match")
		case errors.Is(err, ErrPasswordTooShort):
			response.BadRequest(w, "Password is too short")
		case errors.Is(err, user.ErrEmailTaken):
			response.Conflict(w, "Email already registered")
		default:
			log.Error().Err(err).Msg("Failed to register user")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, resp)
}

// Login handles POST /api/v1/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if fields := validator.Validate(&req); fields != nil {
		response.ValidationError(w, fields)
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCredentials):
			response.Unauthorized(w, "Invalid email or password")
		default:
			log.Error().Err(err).Msg("Failed to log in user")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, resp)
}

// Logout handles POST /api/v1/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractToken(r)

	if err := h.service.Logout(r.Context(), token); err != nil {
		log.Error().Err(err).Msg("Failed to revoke session")
		response.InternalError(w)
		return
	}

	response.OK(w, map[string]string{"message": "Logged out"})
}

// Me handles GET /api/v1/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	resp, err := h.service.Me(r.Context(), actor)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrUserNotFound):
			response.NotFound(w, "Account no longer exists")
		default:
			log.Error().Err(err).Msg("Failed to load account")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, resp)
}

// UpdateProfile handles PATCH /api/v1/auth/profile
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)

	if fields := validator.Validate(&req); fields != nil {
		response.ValidationError(w, fields)
		return
	}

	resp, err := h.service.UpdateProfile(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrPasswordTooShort):
			response.BadRequest(w, "Password is too short")
		case errors.Is(err, user.ErrUserNotFound):
			response.NotFound(w, "Account no longer exists")
		default:
			log.Error().Err(err).Msg("Failed to update profile")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, resp)
}
