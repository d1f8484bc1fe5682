package reschedule_booking

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	Start string `json:"start"` // RFC3339
}
