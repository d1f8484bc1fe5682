package create_booking

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrBookingTypeNotFound возвращается, когда тип бронирования не найден у арендатора
	ErrBookingTypeNotFound = fmt.Errorf("create_booking: booking type %w", domain.ErrNotFound)

	// ErrBookingTypeInactive тип бронирования выключен
	ErrBookingTypeInactive = fmt.Errorf("create_booking: %w", domain.ErrInactive)

	// ErrSlotUnavailable интервал пересекается с активным бронированием
	ErrSlotUnavailable = fmt.Errorf("create_booking: %w", domain.ErrSlotUnavailable)

	// ErrOutsideAvailability начало не совпадает ни с одним слотом правил доступности
	ErrOutsideAvailability = fmt.Errorf("%w: start does not match an available slot", ErrSlotUnavailable)

	// ErrReferenceCodeExhausted не удалось выдать свободный код бронирования
	ErrReferenceCodeExhausted = fmt.Errorf("create_booking: %w", domain.ErrReferenceCodeExhausted)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("create_booking: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
