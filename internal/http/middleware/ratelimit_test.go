package middlewarex

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientIPIgnoresForwardingHeaders(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/contacts", nil)
	r.RemoteAddr = "10.0.0.7:52114"
	r.Header.Set("X-Forwarded-For", "203.0.113.9")

	// The header is attacker-controlled; only RemoteAddr (rewritten by
	// RealIP behind a trusted proxy) picks the bucket.
	assert.Equal(t, "10.0.0.7", clientIP(r))
}

func TestClientIPWithoutPort(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/contacts", nil)
	r.RemoteAddr = "10.0.0.7"
	assert.Equal(t, "10.0.0.7", clientIP(r))
}

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	var called bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	rec := httptest.NewRecorder()
	RateLimit(nil, "public", 5)(next).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/contacts", nil))

	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
}
