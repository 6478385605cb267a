package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes registers admin routes on the router
func (h *Handler) Routes(r chi.Router, authMiddleware, adminMiddleware func(http.Handler) http.Handler) {
	r.Route("/admin", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Use(adminMiddleware)

		r.Get("/users", h.ListUsers)
		r.Post("/users/{id}/toggle-role", h.ToggleRole)
		r.Delete("/users/{id}", h.DeleteUser)
	})
}
