package notification

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Young-Flame/PhotoYo/internal/middleware"
	"github.com/Young-Flame/PhotoYo/internal/pkg/policy"
	"github.com/Young-Flame/PhotoYo/internal/pkg/response"
)

// Handler upgrades admin connections onto the event stream
type Handler struct {
	hub      *Hub
	sessions middleware.SessionResolver
	upgrader websocket.Upgrader
}

// NewHandler creates a new notification handler
func NewHandler(hub *Hub, sessions middleware.SessionResolver) *Handler {
	return &Handler{
		hub:      hub,
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origins are already filtered by the CORS layer
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Events handles GET /api/v1/admin/events. Browsers cannot set headers on
// websocket requests, so the token is also accepted as a query parameter.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	token := middleware.ExtractToken(r)
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		response.Unauthorized(w, "Please login to access this resource")
		return
	}

	actor, err := h.sessions.Resolve(r.Context(), token)
	if err != nil || actor == nil {
		response.Unauthorized(w, "Invalid or expired session")
		return
	}
	if actor.Role != policy.RoleAdmin {
		response.Forbidden(w, "Admin access required")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket")
		return
	}

	c := &client{conn: conn, send: make(chan []byte, 16)}
	h.hub.register <- c

	go c.writePump(h.hub)
	go c.readPump(h.hub)
}
