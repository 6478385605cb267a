package booking

import (
	"context"
	"database/sql"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Young-Flame/PhotoYo/internal/pkg/policy"
)

// Notifier pushes booking events to connected admins. A nil Notifier
// disables notifications.
type Notifier interface {
	BookingCreated(b *Booking)
}

// Service handles booking business logic
type Service struct {
	bookings Repository
	notifier Notifier
}

// NewService creates a new booking service
func NewService(bookings Repository, notifier Notifier) *Service {
	return &Service{bookings: bookings, notifier: notifier}
}

// Create accepts a public booking request. New bookings always start as
// pending regardless of what the client sends. When a logged-in user books,
// the booking is linked to their account.
func (s *Service) Create(ctx context.Context, actor *policy.Actor, req *CreateRequest) (*BookingResponse, error) {
	date, err := req.ParseDate()
	if err != nil {
		return nil, err
	}

	b := &Booking{
		Name:          strings.TrimSpace(req.Name),
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         strings.TrimSpace(req.Phone),
		ServiceType:   req.ServiceType,
		RequestedDate: date,
		Message:       strings.TrimSpace(req.Message),
		Status:        StatusPending,
	}
	if actor != nil {
		b.RequesterID = sql.NullInt64{Int64: actor.ID, Valid: true}
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	log.Info().Int64("booking_id", b.ID).Str("service_type", b.ServiceType).Msg("Booking created")

	if s.notifier != nil {
		s.notifier.BookingCreated(b)
	}

	resp := toResponse(b)
	return &resp, nil
}

// List returns all bookings, newest first. Admin only.
func (s *Service) List(ctx context.Context, actor *policy.Actor) ([]BookingResponse, error) {
	if !policy.CanManageBookings(actor) {
		return nil, ErrForbidden
	}

	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toResponse(b))
	}
	return out, nil
}

// ListMine returns the bookings the actor submitted while logged in
func (s *Service) ListMine(ctx context.Context, actor *policy.Actor) ([]BookingResponse, error) {
	bookings, err := s.bookings.ListByRequester(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, toResponse(b))
	}
	return out, nil
}

// SetStatus moves a booking to any of the four statuses. Admin only. There
// is no transition graph: confirmed back to pending, completed to cancelled
// and every other combination are all allowed.
func (s *Service) SetStatus(ctx context.Context, actor *policy.Actor, id int64, status string) (*BookingResponse, error) {
	if !policy.CanManageBookings(actor) {
		return nil, ErrForbidden
	}
	if !ValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	if err := s.bookings.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}

	log.Info().Int64("booking_id", id).Str("status", status).Msg("Booking status updated")

	resp := toResponse(b)
	return &resp, nil
}

// Delete removes a booking. Admin only.
func (s *Service) Delete(ctx context.Context, actor *policy.Actor, id int64) error {
	if !policy.CanManageBookings(actor) {
		return ErrForbidden
	}
	return s.bookings.Delete(ctx, id)
}
