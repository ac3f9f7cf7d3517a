package middleware

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// RequestLogger logs one line per request. Health and metrics scrapes are skipped.
func RequestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if shouldSkipLogging(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}
			start := time.Now()
			wrapped := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(wrapped, r)

			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", wrapped.statusCode),
				zap.Int("bytes", wrapped.bytes),
				zap.Duration("duration", time.Since(start)),
			}
			if wrapped.statusCode >= http.StatusInternalServerError {
				log.Error("request", fields...)
				return
			}
			log.Info("request", fields...)
		})
	}
}

func shouldSkipLogging(path string) bool {
	return path == "/metrics" || strings.HasPrefix(path, "/health")
}
