package reschedule_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено у арендатора
	ErrBookingNotFound = fmt.Errorf("reschedule_booking: booking %w", domain.ErrNotFound)

	// ErrNotReschedulable бронирование завершено или отменено
	ErrNotReschedulable = fmt.Errorf("reschedule_booking: %w", domain.ErrInvalidTransition)

	// ErrSlotUnavailable новый интервал пересекается с активным бронированием
	ErrSlotUnavailable = fmt.Errorf("reschedule_booking: %w", domain.ErrSlotUnavailable)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("reschedule_booking: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reschedule_booking: internal error")
)
