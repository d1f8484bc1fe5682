package availability

import "errors"

var (
	// ErrInternal ошибка хранилища при проверке доступности
	ErrInternal = errors.New("availability: internal error")
)
