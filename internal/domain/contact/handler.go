package contact

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Young-Flame/PhotoYo/internal/pkg/response"
	"github.com/Young-Flame/PhotoYo/internal/pkg/validator"
)

// Notifier pushes contact events to connected admins. Nil disables it.
type Notifier interface {
	ContactCreated(c *Contact)
}

// Handler handles contact HTTP requests
type Handler struct {
	contacts Repository
	notifier Notifier
}

// NewHandler creates a new contact handler
func NewHandler(contacts Repository, notifier Notifier) *Handler {
	return &Handler{contacts: contacts, notifier: notifier}
}

// Create handles POST /api/v1/contacts
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	// Trim before validating so whitespace-only input fails "required"
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Message = strings.TrimSpace(req.Message)

	if fields := validator.Validate(&req); fields != nil {
		response.ValidationError(w, fields)
		return
	}

	c := &Contact{
		Name:    req.Name,
		Email:   strings.ToLower(req.Email),
		Phone:   req.Phone,
		Message: req.Message,
	}

	if err := h.contacts.Create(r.Context(), c); err != nil {
		log.Error().Err(err).Msg("Failed to create contact")
		response.InternalError(w)
		return
	}

	if h.notifier != nil {
		h.notifier.ContactCreated(c)
	}

	response.Created(w, c)
}

// List handles GET /api/v1/contacts (admin)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contacts.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list contacts")
		response.InternalError(w)
		return
	}

	response.OK(w, contacts)
}
