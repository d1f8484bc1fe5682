package domain

import "time"

const FormSubmissionPending = "pending"

// FormSubmission placeholder created for every form linked to a booking type
type FormSubmission struct {
	ID        int64
	TenantID  int64
	FormID    int64
	BookingID int64
	ContactID int64
	Status    string
	CreatedAt time.Time
}
