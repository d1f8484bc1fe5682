package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	ListActiveInRange(ctx context.Context, bookingTypeID int64, from, to time.Time) ([]*domain.Booking, error)
}

// BookingTypeRepository интерфейс репозитория типов бронирования
type BookingTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingType, error)
	ListRulesForDay(ctx context.Context, bookingTypeID int64, day time.Weekday) ([]domain.AvailabilityRule, error)
}

// TimezoneResolver часовой пояс арендатора
type TimezoneResolver interface {
	Resolve(ctx context.Context, tenantID int64) *time.Location
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
