package dashboard

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers dashboard routes on the router
func (h *Handler) Routes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	// Public landing page numbers
	r.Get("/stats", h.SiteStats)

	// Personal or admin overview
	r.With(authMiddleware).Get("/dashboard", h.Dashboard)
}
