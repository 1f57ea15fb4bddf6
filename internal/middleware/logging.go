package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func (sr *statusRecorder) Write(b []byte) (int, error) {
	n, err := sr.ResponseWriter.Write(b)
	sr.size += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (sr *statusRecorder) Unwrap() http.ResponseWriter { return sr.ResponseWriter }

// Logging пишет одну строку access-лога на запрос: 4xx уровнем warn, 5xx уровнем error.
// route: шаблон chi (/catalog/{code}), чтобы коды товаров не размножали ключи в логах.
func Logging(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sr, r)

			var ev *zerolog.Event
			switch {
			case sr.status >= http.StatusInternalServerError:
				ev = logger.Error()
			case sr.status >= http.StatusBadRequest:
				ev = logger.Warn()
			default:
				ev = logger.Info()
			}
			if rc := chi.RouteContext(r.Context()); rc != nil {
				if p := rc.RoutePattern(); p != "" {
					ev = ev.Str("route", p)
				}
			}
			ev.Str("rid", GetRequestID(r)).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", sr.status).
				Int("size", sr.size).
				Dur("dur", time.Since(start)).
				Msg("http")
		})
	}
}
