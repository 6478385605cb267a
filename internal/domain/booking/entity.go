package booking

import (
	"database/sql"
	"time"
)

// Booking statuses. Admins may move a booking between any of these.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// ValidStatus reports whether s is one of the four booking statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// Booking is a session request. RequesterID is set when a logged-in user
// books and cleared if that account is later deleted.
type Booking struct {
	ID            int64         `db:"id" json:"id"`
	Name          string        `db:"name" json:"name"`
	Email         string        `db:"email" json:"email"`
	Phone         string        `db:"phone" json:"phone,omitempty"`
	ServiceType   string        `db:"service_type" json:"service_type"`
	RequestedDate time.Time     `db:"requested_date" json:"requested_date"`
	Message       string        `db:"message" json:"message,omitempty"`
	Status        string        `db:"status" json:"status"`
	RequesterID   sql.NullInt64 `db:"requester_id" json:"-"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}
