package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BookingRepository источник активных бронирований
type BookingRepository interface {
	ListActiveInRange(ctx context.Context, bookingTypeID int64, from, to time.Time) ([]*domain.Booking, error)
}
