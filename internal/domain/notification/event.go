package notification

import "time"

// Event types pushed to connected admins.
const (
	EventBookingCreated = "booking_created"
	EventContactCreated = "contact_created"
)

// Event is a single admin notification frame
type Event struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload"`
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent builds an event stamped with the current time
func NewEvent(eventType string, payload interface{}) Event {
	return Event{
		Type:      eventType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}
