package middleware

import (
	"net/http"

	"academy/internal/logger"
)

// LoggerMiddleware logs incoming HTTP requests.
func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)

		log := logger.New()
		log.Debug().Msgf("%s %s", r.Method, r.URL.RequestURI())
	})
}
