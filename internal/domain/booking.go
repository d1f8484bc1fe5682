package domain

import "time"

// Booking represents a reserved interval of one booking type
type Booking struct {
	ID            int64
	TenantID      int64
	ContactID     int64
	BookingTypeID int64
	ReferenceCode string
	StartTime     time.Time
	EndTime       time.Time // frozen at creation: StartTime + duration of the type
	Status        BookingStatus
	Notes         *string
	Metadata      map[string]string

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies its interval
func (b *Booking) IsActive() bool {
	return b.Status.IsActive()
}

// Overlaps returns true if the booking intersects [start, end)
func (b *Booking) Overlaps(start, end time.Time) bool {
	return Overlaps(b.StartTime, b.EndTime, start, end)
}

// BookingsFilter filter for tenant booking listings
type BookingsFilter struct {
	TenantID        int64          // required
	BookingTypeID   *int64         // optional
	ContactID       *int64         // optional
	From            *time.Time     // start_time >= From
	To              *time.Time     // start_time < To
	Status          *BookingStatus // exact status
	IncludeInactive bool           // include completed, no_show and cancelled when Status is nil
}
