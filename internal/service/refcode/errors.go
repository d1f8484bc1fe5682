package refcode

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

var (
	// ErrExhausted все попытки выдали занятые коды
	ErrExhausted = fmt.Errorf("refcode: %w", domain.ErrReferenceCodeExhausted)

	// ErrInternal ошибка источника случайности или хранилища
	ErrInternal = errors.New("refcode: internal error")
)
