package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	log, hook := test.NewNullLogger()

	handler := RequestID(Logger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest("GET", "/api/posts", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, req)

	require.Len(t, hook.Entries, 1)
	entry := hook.LastEntry()
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, "GET", entry.Data["method"])
	assert.Equal(t, "/api/posts", entry.Data["path"])
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
	assert.Equal(t, "req-1", entry.Data["request_id"])
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, httptest.NewRequest("GET", "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, rw.Header().Get(RequestIDHeader))
}

func TestRecoverer(t *testing.T) {
	log, hook := test.NewNullLogger()
	handler := Recoverer(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("test panic")
	}))

	rw := httptest.NewRecorder()
	handler.ServeHTTP(rw, httptest.NewRequest("GET", "/api/posts", nil))

	assert.Equal(t, http.StatusInternalServerError, rw.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rw.Body.String())
	assert.NotContains(t, rw.Body.String(), "test panic")
	require.Len(t, hook.Entries, 1)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestContentTypeJSON(t *testing.T) {
	handler := ContentTypeJSON(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	tests := []struct {
		path string
		want string
	}{
		{"/api/posts", "application/json"},
		{"/healthz", ""},
		{"/", ""},
	}
	for _, tt := range tests {
		rw := httptest.NewRecorder()
		handler.ServeHTTP(rw, httptest.NewRequest("GET", tt.path, nil))
		assert.Equal(t, tt.want, rw.Header().Get("Content-Type"), tt.path)
	}
}

func TestTokenExtractor(t *testing.T) {
	var token string
	handler := TokenExtractor(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token = Token(r.Context())
	}))

	req := httptest.NewRequest("GET", "/api/posts", nil)
	req.Header.Set("Authorization", "bearer abc.def.ghi")
	handler.ServeHTTP(httptest.NewRecorder(), req)
	assert.Equal(t, "abc.def.ghi", token)

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/posts", nil))
	assert.Empty(t, token)
}
