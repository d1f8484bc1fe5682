package get_available_dates

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrBookingTypeNotFound возвращается, когда тип бронирования не найден
	ErrBookingTypeNotFound = fmt.Errorf("get_available_dates: booking type %w", domain.ErrNotFound)

	// ErrBookingTypeInactive тип бронирования выключен
	ErrBookingTypeInactive = fmt.Errorf("get_available_dates: %w", domain.ErrInactive)

	// ErrInvalidHorizon горизонт вне допустимого диапазона
	ErrInvalidHorizon = fmt.Errorf("get_available_dates: invalid horizon: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_dates: internal error")
)
