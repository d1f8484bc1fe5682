package form

import "errors"

var (
	// ErrFormNotFound возвращается, когда форма не найдена у арендатора
	ErrFormNotFound = errors.New("form.repository: form not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("form.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("form.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("form.repository: failed to scan row")
)
