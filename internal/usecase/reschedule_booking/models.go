package reschedule_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Request модель запроса на перенос бронирования
type Request struct {
	TenantID  int64
	BookingID int64
	NewStart  time.Time
}

// Response модель ответа с перенесённым бронированием
type Response struct {
	Booking  *domain.Booking
	Previous *domain.Booking
}
