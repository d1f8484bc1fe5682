package workspaceservice

import "context"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// TenantGetter источник данных арендатора
type TenantGetter interface {
	GetTenant(ctx context.Context, tenantID int64) (*Tenant, error)
}
