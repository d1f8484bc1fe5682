package get_available_slots

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrBookingTypeNotFound возвращается, когда тип бронирования не найден
	ErrBookingTypeNotFound = fmt.Errorf("get_available_slots: booking type %w", domain.ErrNotFound)

	// ErrBookingTypeInactive тип бронирования выключен
	ErrBookingTypeInactive = fmt.Errorf("get_available_slots: %w", domain.ErrInactive)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("get_available_slots: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
