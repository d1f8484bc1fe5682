package check_slot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BookingTypeRepository интерфейс репозитория типов бронирования
type BookingTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingType, error)
}

// AvailabilityChecker проверка пересечения интервала с активными бронированиями
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, bookingTypeID int64, start, end time.Time, excludeBookingID *int64) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
