package domain

// Business validation constants
const (
	MinDurationMinutes       = 5
	MaxDurationMinutes       = 480 // 8 hours
	MaxBookingTypeNameLength = 200
	MaxNotesLength           = 1000
	MaxCancelReasonLength    = 500
	MaxCustomerNameLength    = 200
)

// Reference code allocation
const (
	ReferenceCodeAlphabet    = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789" // no 0/O, 1/I
	ReferenceCodeLength      = 8
	ReferenceCodeMaxAttempts = 5
)

// Metadata keys written by the service
const (
	MetadataCancelReason = "cancel_reason"
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses statuses that occupy their interval
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
