package photo

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers photo routes on the router
func (h *Handler) Routes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/photos", func(r chi.Router) {
		// Public gallery
		r.Get("/", h.List)
		r.Get("/featured", h.Featured)
		r.Get("/{id}", h.Detail)

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.Upload)
			r.Patch("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			r.Post("/{id}/like", h.Like)
			r.Post("/{id}/comments", h.AddComment)
		})
	})
}
