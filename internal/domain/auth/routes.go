package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers auth routes on the router
func (h *Handler) Routes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		// Public
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Get("/me", h.Me)
			r.Patch("/profile", h.UpdateProfile)
		})
	})
}
