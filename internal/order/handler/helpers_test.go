package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReadBody(t *testing.T) {
	t.Run("oversize body is 413", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 64)))
		r.Body = http.MaxBytesReader(w, r.Body, 16)

		_, ok := readBody(w, r)
		assert.False(t, ok)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.JSONEq(t, `{"error":"body exceeds 16 bytes"}`, w.Body.String())
	})

	t.Run("within limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
		r.Body = http.MaxBytesReader(w, r.Body, 16)

		b, ok := readBody(w, r)
		assert.True(t, ok)
		assert.Equal(t, "{}", string(b))
	})
}
