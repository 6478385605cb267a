package notification

import (
	"github.com/Young-Flame/PhotoYo/internal/domain/booking"
	"github.com/Young-Flame/PhotoYo/internal/domain/contact"
)

// Broadcaster adapts the hub to the notifier interfaces the booking and
// contact domains expect.
type Broadcaster struct {
	hub *Hub
}

// NewBroadcaster creates a broadcaster over the hub
func NewBroadcaster(hub *Hub) *Broadcaster {
	return &Broadcaster{hub: hub}
}

// BookingCreated pushes a new booking to connected admins
func (b *Broadcaster) BookingCreated(booking *booking.Booking) {
	b.hub.Broadcast(NewEvent(EventBookingCreated, map[string]interface{}{
		"id":             booking.ID,
		"name":           booking.Name,
		"service_type":   booking.ServiceType,
		"requested_date": booking.RequestedDate.Format("2006-01-02"),
	}))
}

// ContactCreated pushes a new contact message to connected admins
func (b *Broadcaster) ContactCreated(c *contact.Contact) {
	b.hub.Broadcast(NewEvent(EventContactCreated, map[string]interface{}{
		"id":    c.ID,
		"name":  c.Name,
		"email": c.Email,
		"phone": c.Phone,
	}))
}
