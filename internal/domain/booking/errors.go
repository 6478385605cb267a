package booking

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrInvalidStatus   = errors.New("invalid booking status")
	ErrInvalidDate     = errors.New("invalid requested date")
	ErrForbidden       = errors.New("admin access required")
)
