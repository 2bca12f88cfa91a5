package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/weathernow/weathernow/internal/api/middleware"
)

func serveWithRequestID(t *testing.T, incoming string) (ctxID, headerID string) {
	t.Helper()
	handler := middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = middleware.GetRequestID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/weather?city=Oslo", nil)
	if incoming != "" {
		req.Header.Set(middleware.RequestIDHeader, incoming)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	return ctxID, w.Header().Get(middleware.RequestIDHeader)
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	ctxID, headerID := serveWithRequestID(t, "")

	assert.True(t, strings.HasPrefix(ctxID, "req_"))
	assert.Len(t, ctxID, 26)
	assert.Equal(t, ctxID, headerID)
}

func TestRequestID_ReusesIncoming(t *testing.T) {
	ctxID, headerID := serveWithRequestID(t, "dash-7f3a.2")

	assert.Equal(t, "dash-7f3a.2", ctxID)
	assert.Equal(t, "dash-7f3a.2", headerID)
}

func TestRequestID_ReplacesUnsafeIncoming(t *testing.T) {
	for name, incoming := range map[string]string{
		"spaces":    "id with spaces",
		"injection": "abc\"}{\"level\":\"error",
		"too long":  strings.Repeat("a", 129),
	} {
		t.Run(name, func(t *testing.T) {
			ctxID, headerID := serveWithRequestID(t, incoming)
			assert.NotEqual(t, incoming, ctxID)
			assert.True(t, strings.HasPrefix(headerID, "req_"))
		})
	}
}

func TestGetRequestID_EmptyWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, middleware.GetRequestID(req.Context()))
}

func TestNewRequestID_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 100)
	for i := 0; i < 100; i++ {
		id := middleware.NewRequestID()
		_, dup := seen[id]
		assert.False(t, dup, "duplicate request ID %s", id)
		seen[id] = struct{}{}
	}
}
