package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomToken(t *testing.T) {
	a, err := randomToken(16)
	require.NoError(t, err)
	b, err := randomToken(16)
	require.NoError(t, err)

	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)
}

func TestShutdownHandlerGuards(t *testing.T) {
	token := "secret"
	h := shutdownHandler(&token, &http.Server{}, nil)

	tests := []struct {
		name   string
		method string
		remote string
		token  string
		origin string
		want   int
	}{
		{name: "wrong method", method: http.MethodGet, remote: "127.0.0.1:1", token: "secret", want: http.StatusMethodNotAllowed},
		{name: "remote caller", method: http.MethodPost, remote: "10.0.0.5:1", token: "secret", want: http.StatusForbidden},
		{name: "missing token", method: http.MethodPost, remote: "127.0.0.1:1", want: http.StatusUnauthorized},
		{name: "bad token", method: http.MethodPost, remote: "127.0.0.1:1", token: "nope", want: http.StatusUnauthorized},
		{name: "other site", method: http.MethodPost, remote: "127.0.0.1:1", token: "secret", origin: "https://evil.example", want: http.StatusForbidden},
		{name: "ok", method: http.MethodPost, remote: "127.0.0.1:1", token: "secret", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/shutdown", nil)
			req.RemoteAddr = tt.remote
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			if tt.token != "" {
				req.Header.Set("X-Shutdown-Token", tt.token)
			}
			rec := httptest.NewRecorder()
			h(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
