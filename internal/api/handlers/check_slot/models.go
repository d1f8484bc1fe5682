package check_slot

import (
	"time"

	checkSlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/check_slot"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	BookingTypeID int64     `json:"bookingTypeId"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Available     bool      `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkSlot.Response) *AvailabilityResponse {
	return &AvailabilityResponse{
		BookingTypeID: resp.BookingTypeID,
		Start:         resp.Start,
		End:           resp.End,
		Available:     resp.Available,
	}
}
