package reschedule_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, tenantID, id int64) (*domain.Booking, error)
	LockBookingTypeOf(ctx context.Context, tenantID, bookingID int64) (int64, error)
	UpdateInterval(ctx context.Context, tenantID, id int64, start, end time.Time) (*domain.Booking, error)
}

// BookingTypeRepository интерфейс репозитория типов бронирования
type BookingTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingType, error)
}

// AvailabilityChecker проверка пересечения интервала с активными бронированиями
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, bookingTypeID int64, start, end time.Time, excludeBookingID *int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикует события после фиксации транзакции
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}

// MetricsRecorder бизнес-метрики бронирования
type MetricsRecorder interface {
	IncSlotConflict(operation string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
