package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers booking routes on the router
func (h *Handler) Routes(r chi.Router, optionalAuth, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/bookings", func(r chi.Router) {
		// Public submission; a logged-in requester is linked when present
		r.With(optionalAuth).Post("/", h.Create)

		// Own bookings for logged-in users
		r.With(authMiddleware).Get("/mine", h.ListMine)

		// Admin management
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(adminMiddleware)
			r.Get("/", h.List)
			r.Patch("/{id}/status", h.UpdateStatus)
			r.Delete("/{id}", h.Delete)
		})
	})
}
