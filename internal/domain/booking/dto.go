package booking

import "time"

// DateFormat is the wire format for the requested session date.
const DateFormat = "2006-01-02"

// CreateRequest is a public booking submission
type CreateRequest struct {
	Name          string `json:"name" validate:"required,min=2,max=100"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"omitempty,max=30"`
	ServiceType   string `json:"service_type" validate:"required,service_type"`
	RequestedDate string `json:"requested_date" validate:"required"`
	Message       string `json:"message" validate:"omitempty,max=2000"`
}

// ParseDate validates and parses the requested date
func (r *CreateRequest) ParseDate() (time.Time, error) {
	d, err := time.Parse(DateFormat, r.RequestedDate)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// UpdateStatusRequest moves a booking to a new status
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,booking_status"`
}

// BookingResponse is the admin view of a booking
type BookingResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	ServiceType   string    `json:"service_type"`
	RequestedDate string    `json:"requested_date"`
	Message       string    `json:"message,omitempty"`
	Status        string    `json:"status"`
	RequesterID   int64     `json:"requester_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toResponse(b *Booking) BookingResponse {
	resp := BookingResponse{
		ID:            b.ID,
		Name:          b.Name,
		Email:         b.Email,
		Phone:         b.Phone,
		ServiceType:   b.ServiceType,
		RequestedDate: b.RequestedDate.Format(DateFormat),
		Message:       b.Message,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
	}
	if b.RequesterID.Valid {
		resp.RequesterID = b.RequesterID.Int64
	}
	return resp
}
