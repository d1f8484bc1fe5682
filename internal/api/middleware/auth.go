package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

// TenantIDHeader заголовок с ID арендатора; проверка подлинности выполняется шлюзом
const TenantIDHeader = "X-Tenant-ID"

const msgMissingTenantID = "отсутствует или некорректен заголовок X-Tenant-ID"

type contextKey string

const tenantIDKey contextKey = "tenant_id"

// Auth кладёт ID арендатора из заголовка в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tenantID, err := strconv.ParseInt(r.Header.Get(TenantIDHeader), 10, 64)
		if err != nil || tenantID <= 0 {
			handlers.RespondUnauthorized(w, msgMissingTenantID)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithTenantID(r.Context(), tenantID)))
	})
}

// WithTenantID контекст с ID арендатора
func WithTenantID(ctx context.Context, tenantID int64) context.Context {
	return context.WithValue(ctx, tenantIDKey, tenantID)
}

// GetTenantID ID арендатора из контекста
func GetTenantID(ctx context.Context) (int64, bool) {
	tenantID, ok := ctx.Value(tenantIDKey).(int64)
	return tenantID, ok
}
