package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// headerTracker remembers whether the status line has gone out.
type headerTracker struct {
	http.ResponseWriter
	wrote bool
}

func (ht *headerTracker) WriteHeader(code int) {
	ht.wrote = true
	ht.ResponseWriter.WriteHeader(code)
}

func (ht *headerTracker) Write(b []byte) (int, error) {
	ht.wrote = true
	return ht.ResponseWriter.Write(b)
}

func (ht *headerTracker) Unwrap() http.ResponseWriter { return ht.ResponseWriter }

// Recover turns a handler panic into a logged 500. http.ErrAbortHandler is
// re-raised so net/http can drop the connection. If the handler already
// started its response the panic is only logged.
// Mount it inside Logging so the 500 still gets an access-log line.
func Recover(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ht := &headerTracker{ResponseWriter: w}
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}
				logger.Error().
					Str("rid", GetRequestID(r)).
					Str("method", r.Method).
					Str("path", r.URL.Path).
					Interface("panic", rec).
					Bool("headers_sent", ht.wrote).
					Bytes("stack", debug.Stack()).
					Msg("handler panic")
				if !ht.wrote {
					writeError(w, http.StatusInternalServerError, "internal")
				}
			}()
			next.ServeHTTP(ht, r)
		})
	}
}

// writeError is the {"error": "..."} envelope the handlers use too.
func writeError(w http.ResponseWriter, status int, msg string) {
	b, _ := json.Marshal(struct {
		Error string `json:"error"`
	}{msg})
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}
