package bookingtypes

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrBookingTypeNotFound тип бронирования не найден у арендатора
	ErrBookingTypeNotFound = fmt.Errorf("bookingtypes: booking type %w", domain.ErrNotFound)

	// ErrRuleNotFound правило доступности не найдено
	ErrRuleNotFound = fmt.Errorf("bookingtypes: availability rule %w", domain.ErrNotFound)

	// ErrFormNotFound форма не найдена у арендатора
	ErrFormNotFound = fmt.Errorf("bookingtypes: form %w", domain.ErrNotFound)

	// ErrHasBookings удаление запрещено: на тип ссылаются бронирования
	ErrHasBookings = fmt.Errorf("bookingtypes: %w", domain.ErrHasBookings)

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = fmt.Errorf("bookingtypes: %w", domain.ErrValidation)

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("bookingtypes: internal error")
)
