package middleware

import (
	"net/http"

	"github.com/rs/cors"

	"property-backend/internal/config"
)

func NewCORS(cfg *config.Config) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CorsAllowedOrigins,
		AllowedMethods:   cfg.Server.CorsAllowedMethods,
		AllowedHeaders:   cfg.Server.CorsAllowedHeaders,
		AllowCredentials: !allowsAny(cfg.Server.CorsAllowedOrigins),
		MaxAge:           300,
	})
	return c.Handler
}

// credentials cannot be combined with a wildcard origin
func allowsAny(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
