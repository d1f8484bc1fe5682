package bookingtype

import "errors"

var (
	// ErrBookingTypeNotFound возвращается, когда тип бронирования не найден
	ErrBookingTypeNotFound = errors.New("bookingtype.repository: booking type not found")

	// ErrRuleNotFound возвращается, когда правило доступности не найдено
	ErrRuleNotFound = errors.New("bookingtype.repository: availability rule not found")

	// ErrReferenced на тип ссылаются бронирования (FOREIGN KEY RESTRICT)
	ErrReferenced = errors.New("bookingtype.repository: booking type is referenced by bookings")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("bookingtype.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("bookingtype.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("bookingtype.repository: failed to scan row")
)
