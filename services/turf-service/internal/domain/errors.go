package domain

import (
	"errors"
	"fmt"
)

// Kinds. Concrete errors wrap exactly one of these so the transports can map
// them with errors.Is.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalid      = errors.New("invalid input")
	ErrUnavailable  = errors.New("service unavailable")
)

var (
	ErrSlotBooked         = fmt.Errorf("%w: slot already booked", ErrConflict)
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", ErrConflict)
	ErrSlotNotFound       = fmt.Errorf("%w: slot", ErrNotFound)
	ErrTurfNotFound       = fmt.Errorf("%w: turf", ErrNotFound)
	ErrBookingNotFound    = fmt.Errorf("%w: booking", ErrNotFound)
	ErrUserNotFound       = fmt.Errorf("%w: user", ErrNotFound)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrAdminOnly          = fmt.Errorf("%w: admin only", ErrForbidden)
)

// Unavailable marks a store or broker failure.
func Unavailable(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnavailable, op, err)
}
