package domain

import "errors"

// Error taxonomy shared by every layer. Package-level errors wrap one of these
// so transports can map them with errors.Is.
var (
	ErrNotFound               = errors.New("not found")
	ErrInactive               = errors.New("booking type is inactive")
	ErrSlotUnavailable        = errors.New("slot is unavailable")
	ErrInvalidTransition      = errors.New("invalid status transition")
	ErrReferenceCodeExhausted = errors.New("reference code attempts exhausted")
	ErrValidation             = errors.New("validation failed")
	ErrHasBookings            = errors.New("booking type has bookings")
)
