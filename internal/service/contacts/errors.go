package contacts

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrInvalidCustomer у клиента нет ни email, ни телефона
	ErrInvalidCustomer = fmt.Errorf("contacts: %w: email or phone is required", domain.ErrValidation)

	// ErrInternal ошибка хранилища контактов
	ErrInternal = errors.New("contacts: internal error")
)
