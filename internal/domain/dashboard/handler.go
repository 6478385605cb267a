package dashboard

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/Young-Flame/PhotoYo/internal/middleware"
	"github.com/Young-Flame/PhotoYo/internal/pkg/response"
)

// Handler handles dashboard HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates a new dashboard handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Dashboard handles GET /api/v1/dashboard. Admins get the studio-wide
// overview, everyone else their personal numbers.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	if actor.IsAdmin() {
		stats, err := h.service.AdminStats(r.Context())
		if err != nil {
			log.Error().Err(err).Msg("Failed to load admin dashboard")
			response.InternalError(w)
			return
		}
		response.OK(w, stats)
		return
	}

	stats, err := h.service.UserStats(r.Context(), actor)
	if err != nil {
		log.Error().Err(err).Int64("user_id", actor.ID).Msg("Failed to load user dashboard")
		response.InternalError(w)
		return
	}
	response.OK(w, stats)
}

// SiteStats handles GET /api/v1/stats
func (h *Handler) SiteStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.SiteStats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to load site stats")
		response.InternalError(w)
		return
	}

	response.OK(w, stats)
}
