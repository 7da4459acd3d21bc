package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestRequestID(t *testing.T) {
	var logs bytes.Buffer
	var seenID string
	handler := RequestID(zerolog.New(&logs))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetRequestID(r.Context())
		require.True(t, ok)
		seenID = id
		zerolog.Ctx(r.Context()).Info().Msg("inside")
	}))

	t.Run("generated", func(t *testing.T) {
		logs.Reset()
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Len(t, seenID, 36)
		assert.Equal(t, seenID, w.Header().Get(RequestIDHeader))
		assert.Contains(t, logs.String(), `"request_id":"`+seenID+`"`)
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", seenID)
		assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	})
}

func TestGetRequestID_Missing(t *testing.T) {
	_, ok := GetRequestID(httptest.NewRequest(http.MethodGet, "/", nil).Context())
	assert.False(t, ok)
}

func TestAPIKey(t *testing.T) {
	handler := APIKey("secret", "/health")(http.HandlerFunc(okHandler))

	tests := []struct {
		name   string
		path   string
		header string
		value  string
		status int
	}{
		{"missing key", "/parse", "", "", http.StatusUnauthorized},
		{"wrong key", "/parse", APIKeyHeader, "nope", http.StatusUnauthorized},
		{"api key header", "/parse", APIKeyHeader, "secret", http.StatusOK},
		{"bearer token", "/parse", "Authorization", "Bearer secret", http.StatusOK},
		{"basic auth rejected", "/parse", "Authorization", "Basic secret", http.StatusUnauthorized},
		{"open path", "/health", "", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set(tt.header, tt.value)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestAPIKey_Disabled(t *testing.T) {
	handler := APIKey("")(http.HandlerFunc(okHandler))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/parse", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
