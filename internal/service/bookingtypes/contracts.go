package bookingtypes

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BookingTypeRepository интерфейс репозитория типов бронирования
type BookingTypeRepository interface {
	Create(ctx context.Context, bt *domain.BookingType) (*domain.BookingType, error)
	GetByID(ctx context.Context, id int64) (*domain.BookingType, error)
	ListByTenant(ctx context.Context, tenantID int64) ([]*domain.BookingType, error)
	Update(ctx context.Context, bt *domain.BookingType) (*domain.BookingType, error)
	HasBookings(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, tenantID, id int64) error

	AddRule(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error)
	DeleteRule(ctx context.Context, bookingTypeID, ruleID int64) error
	ListRules(ctx context.Context, bookingTypeID int64) ([]domain.AvailabilityRule, error)
}

// FormRepository интерфейс репозитория форм
type FormRepository interface {
	FormExists(ctx context.Context, tenantID, formID int64) (bool, error)
	LinkForm(ctx context.Context, bookingTypeID, formID int64) error
	ListLinkedFormIDs(ctx context.Context, bookingTypeID int64) ([]int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

