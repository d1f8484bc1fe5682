package get_available_dates

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BookingTypeRepository интерфейс репозитория типов бронирования
type BookingTypeRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.BookingType, error)
	ListRules(ctx context.Context, bookingTypeID int64) ([]domain.AvailabilityRule, error)
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
