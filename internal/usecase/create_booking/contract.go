package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/refcode"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	LockBookingType(ctx context.Context, bookingTypeID int64) error
	ReferenceCodeExists(ctx context.Context, code string) (bool, error)
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

// FormRepository интерфейс репозитория форм
type FormRepository interface {
	ListLinkedFormIDs(ctx context.Context, bookingTypeID int64) ([]int64, error)
	CreateSubmission(ctx context.Context, sub *domain.FormSubmission) (*domain.FormSubmission, error)
}

// AvailabilityChecker проверка пересечения интервала с активными бронированиями
type AvailabilityChecker interface {
	IsAvailable(ctx context.Context, bookingTypeID int64, start, end time.Time, excludeBookingID *int64) (bool, error)
}

// ContactResolver поиск или создание контакта клиента
type ContactResolver interface {
	Resolve(ctx context.Context, tenantID int64, customer domain.Customer) (*domain.Contact, bool, error)
}

// ReferenceCodeAllocator выдача уникального кода бронирования
type ReferenceCodeAllocator interface {
	Allocate(ctx context.Context, exists refcode.ExistsFunc) (string, error)
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
	IncBookingCreated()
	IncSlotConflict(operation string)
	IncReferenceCodeExhausted()
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
