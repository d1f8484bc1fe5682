package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotConflict нарушено ограничение исключения: интервал занят активным бронированием
	ErrSlotConflict = errors.New("booking.repository: interval overlaps an active booking")

	// ErrDuplicateReferenceCode код бронирования уже занят
	ErrDuplicateReferenceCode = errors.New("booking.repository: duplicate reference code")

	// ErrStatusChanged условное обновление не затронуло строк: статус уже другой или бронирования нет
	ErrStatusChanged = errors.New("booking.repository: booking status changed concurrently")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("booking.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
