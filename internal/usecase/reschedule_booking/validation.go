package reschedule_booking

import (
	"fmt"
	"time"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, now time.Time) error {
	if req.TenantID <= 0 {
		return fmt.Errorf("%w: tenantId must be positive", ErrInvalidInput)
	}
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingId must be positive", ErrInvalidInput)
	}
	if req.NewStart.IsZero() {
		return fmt.Errorf("%w: start is required", ErrInvalidInput)
	}
	if !req.NewStart.After(now) {
		return fmt.Errorf("%w: start must be in the future", ErrInvalidInput)
	}
	return nil
}
