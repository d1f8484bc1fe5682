package contacts

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ContactRepository интерфейс репозитория контактов
type ContactRepository interface {
	GetByEmail(ctx context.Context, tenantID int64, email string) (*domain.Contact, error)
	GetByPhone(ctx context.Context, tenantID int64, phone string) (*domain.Contact, error)
	Create(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
