package domain

import "time"

// Lifecycle event names
const (
	EventBookingCreated   = "booking.created"
	EventBookingUpdated   = "booking.updated"
	EventBookingCancelled = "booking.cancelled"
	EventContactCreated   = "contact.created"
)

// Event notification for automation and notification subscribers
type Event struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	TenantID   int64       `json:"tenant_id"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// BookingEventPayload body of booking.* events
type BookingEventPayload struct {
	Booking  BookingSnapshot  `json:"booking"`
	Contact  *ContactSnapshot `json:"contact,omitempty"`
	Previous *BookingSnapshot `json:"previous,omitempty"`
}

// ContactEventPayload body of contact.created
type ContactEventPayload struct {
	Contact ContactSnapshot `json:"contact"`
}

type BookingSnapshot struct {
	ID            int64             `json:"id"`
	TenantID      int64             `json:"tenant_id"`
	ContactID     int64             `json:"contact_id"`
	BookingTypeID int64             `json:"booking_type_id"`
	ReferenceCode string            `json:"reference_code"`
	StartTime     time.Time         `json:"start_time"`
	EndTime       time.Time         `json:"end_time"`
	Status        BookingStatus     `json:"status"`
	Notes         *string           `json:"notes,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

type ContactSnapshot struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

func SnapshotBooking(b *Booking) BookingSnapshot {
	return BookingSnapshot{
		ID:            b.ID,
		TenantID:      b.TenantID,
		ContactID:     b.ContactID,
		BookingTypeID: b.BookingTypeID,
		ReferenceCode: b.ReferenceCode,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		Status:        b.Status,
		Notes:         b.Notes,
		Metadata:      b.Metadata,
	}
}

func SnapshotContact(c *Contact) ContactSnapshot {
	return ContactSnapshot{ID: c.ID, Name: c.Name, Email: c.Email, Phone: c.Phone}
}
