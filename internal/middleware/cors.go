package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
)

// CORS answers preflights and echoes an allowed Origin; "*" in the list
// allows any origin.
func CORS(allowOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", HeaderRequestID},
		ExposedHeaders: []string{HeaderRequestID},
		MaxAge:         600,
	})
}
