package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/Young-Flame/PhotoYo/internal/middleware"
	"github.com/Young-Flame/PhotoYo/internal/pkg/response"
	"github.com/Young-Flame/PhotoYo/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates a new booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /api/v1/bookings
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	// Trim before validating so whitespace-only fields fail "required"
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Message = strings.TrimSpace(req.Message)

	if fields := validator.Validate(&req); fields != nil {
		response.ValidationError(w, fields)
		return
	}

	actor := middleware.GetActor(r.Context())

	resp, err := h.service.Create(r.Context(), actor, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidDate):
			response.BadRequest(w, "Requested date must be YYYY-MM-DD")
		default:
			log.Error().Err(err).Msg("Failed to create booking")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, resp)
}

// List handles GET /api/v1/bookings
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	bookings, err := h.service.List(r.Context(), actor)
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			response.Forbidden(w, "Admin access required")
		default:
			log.Error().Err(err).Msg("Failed to list bookings")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, bookings)
}

// ListMine handles GET /api/v1/bookings/mine
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	bookings, err := h.service.ListMine(r.Context(), actor)
	if err != nil {
		log.Error().Err(err).Int64("user_id", actor.ID).Msg("Failed to list own bookings")
		response.InternalError(w)
		return
	}

	response.OK(w, bookings)
}

// UpdateStatus handles PATCH /api/v1/bookings/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if fields := validator.Validate(&req); fields != nil {
		response.ValidationError(w, fields)
		return
	}

	resp, err := h.service.SetStatus(r.Context(), middleware.GetActor(r.Context()), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			response.Forbidden(w, "Admin access required")
		case errors.Is(err, ErrInvalidStatus):
			response.BadRequest(w, "Status must be pending, confirmed, cancelled or completed")
		case errors.Is(err, ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		default:
			log.Error().Err(err).Int64("booking_id", id).Msg("Failed to update booking status")
			response.InternalError(w)
		}
		return
	}

	response.OK(w, resp)
}

// Delete handles DELETE /api/v1/bookings/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := bookingID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), middleware.GetActor(r.Context()), id); err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			response.Forbidden(w, "Admin access required")
		case errors.Is(err, ErrBookingNotFound):
			response.NotFound(w, "Booking not found")
		default:
			log.Error().Err(err).Int64("booking_id", id).Msg("Failed to delete booking")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

func bookingID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(w, "Invalid booking ID")
		return 0, false
	}
	return id, true
}
