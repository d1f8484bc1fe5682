package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	TenantID      int64             // ID арендатора
	BookingTypeID int64             // ID типа бронирования
	Start         time.Time         // Начало интервала
	Customer      domain.Customer   // Данные клиента
	Notes         *string           // Заметки (опционально)
	Metadata      map[string]string // Произвольные метаданные (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking           *domain.Booking
	Contact           *domain.Contact
	ContactCreated    bool    // контакт создан этим запросом
	FormSubmissionIDs []int64 // заготовки анкет по привязанным формам
}
