package workspaceservice

import "errors"

var (
	// ErrTenantNotFound арендатор не найден в WorkspaceService
	ErrTenantNotFound = errors.New("workspaceservice client: tenant not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("workspaceservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("workspaceservice client: invalid response")
)
