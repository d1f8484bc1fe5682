package middleware

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

type Logger interface {
	Error(format string, v ...interface{})
}

// Recover отвечает 500 вместо обрыва соединения при панике в обработчике
func Recover(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if re := recover(); re != nil {
					log.Error("%s %s - panic: %v", r.Method, r.URL.Path, re)
					handlers.RespondInternalError(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
