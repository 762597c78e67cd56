package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-service-kit/logger"
	"github.com/MKhiriev/go-service-kit/trace"
)

func TestNewRouter_TraceIDWired(t *testing.T) {
	router := NewRouter(logger.Nop())
	router.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		_, ok := trace.GetIDFromContext(r.Context())
		assert.True(t, ok, "handler must see a trace ID")
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/ping", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(trace.Header))
}

func TestNewRouter_RecoversFromPanic(t *testing.T) {
	router := NewRouter(logger.Nop())
	router.Get("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("handler exploded")
	})

	rr := httptest.NewRecorder()
	require.NotPanics(t, func() {
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))
	})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestNewRouter_GZipOption(t *testing.T) {
	router := NewRouter(logger.Nop(), WithGZip())
	router.Get("/data", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("payload"))
	})

	req := httptest.NewRequest(http.MethodGet, "/data", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
	assert.Equal(t, "payload", gunzipBytes(t, rr.Body.Bytes()))
}

func TestNewRouter_IntegrityOption(t *testing.T) {
	router := NewRouter(logger.Nop(), WithIntegrity("key", true))
	router.Post("/upload", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/upload", nil))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
