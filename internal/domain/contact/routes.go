package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers contact routes on the router
func (h *Handler) Routes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/contacts", func(r chi.Router) {
		// Public form
		r.Post("/", h.Create)

		// Admin inbox
		r.With(authMiddleware, adminMiddleware).Get("/", h.List)
	})
}
