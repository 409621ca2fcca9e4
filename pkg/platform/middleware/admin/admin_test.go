package admin

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"fes/pkg/requestcontext"
)

func TestRequireAdminUser(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.AdminUser(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	h := RequireAdminUser(logger)(next)

	t.Run("missing header rejected with 400", func(t *testing.T) {
		seen = ""
		req := httptest.NewRequest(http.MethodPatch, "/v1/certificates/GBR-2024-CC-1", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, seen)
	})

	t.Run("empty header rejected with 400", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/v1/certificates/GBR-2024-CC-1", nil)
		req.Header.Set(HeaderAdminUser, "")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("identity forwarded in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPatch, "/v1/certificates/GBR-2024-CC-1", nil)
		req.Header.Set(HeaderAdminUser, "admin@example.com")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "admin@example.com", seen)
	})
}
