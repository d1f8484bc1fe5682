package bookings

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено у арендатора
	ErrBookingNotFound = fmt.Errorf("bookings: booking %w", domain.ErrNotFound)

	// ErrInvalidTransition переход статуса запрещён
	ErrInvalidTransition = fmt.Errorf("bookings: %w", domain.ErrInvalidTransition)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("bookings: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookings: internal error")
)
