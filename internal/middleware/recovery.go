package middleware

import (
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"property-backend/internal/observability"
	"property-backend/pkg/utils"
)

// PanicRecovery turns a handler panic into a 500 and reports it.
func PanicRecovery(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic recovered",
						zap.Any("panic", rec),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.Stack("stack"),
					)
					observability.CaptureErr(fmt.Errorf("panic: %v", rec))
					utils.Error(w, http.StatusInternalServerError, "Internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
