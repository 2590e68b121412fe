package entity

import (
	"errors"
	"fmt"
)

var (
	// Booking errors
	ErrBookingNotFound = errors.New("booking not found")

	// General errors
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptyName    = fmt.Errorf("%w: customer name is required", ErrInvalidInput)

	// ErrEmptyStore is a reportable empty result, not a failure: nothing to
	// list, nothing matched, or nothing to export.
	ErrEmptyStore = errors.New("no bookings found")
)
