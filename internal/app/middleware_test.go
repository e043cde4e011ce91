package app

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func middlewareStackHandler(t *testing.T, cfg *Config) http.Handler {
	t.Helper()
	handler := http.Handler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	stack := MiddlewareStack(MiddlewareConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config: cfg,
	})
	for i := len(stack) - 1; i >= 0; i-- {
		handler = stack[i](handler)
	}
	return handler
}

func preflight(handler http.Handler, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, "/products", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestCORSWildcardOriginWithoutCredentials(t *testing.T) {
	handler := middlewareStackHandler(t, &Config{CORSAllowedOrigins: []string{"*"}})

	rec := preflight(handler, "https://shop.example.com")
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Credentials"),
		"wildcard origin must not be combined with credentials")
}

func TestCORSExplicitOriginAllowsCredentials(t *testing.T) {
	handler := middlewareStackHandler(t, &Config{CORSAllowedOrigins: []string{"https://shop.example.com"}})

	rec := preflight(handler, "https://shop.example.com")
	assert.Equal(t, "https://shop.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}
