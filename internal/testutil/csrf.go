package testutil

import (
	"context"
	"net/http"
	"net/url"
)

// csrfTokenKey matches the key used by gorilla/csrf internally.
// This allows us to inject a mock token for testing.
const csrfTokenKey = "gorilla.csrf.Token"

// TestCSRFToken is the token WithCSRFToken injects.
const TestCSRFToken = "test-csrf-token-12345"

// WithCSRFToken adds a mock CSRF token to the request context so handlers
// that call csrf.Token(r) (directly or through viewdata.New) get a value.
//
// Usage:
//
//	req := httptest.NewRequest(http.MethodGet, "/path", nil)
//	req = testutil.WithCSRFToken(req)
//	handler.ServeHTTP(rec, req)
func WithCSRFToken(r *http.Request) *http.Request {
	ctx := context.WithValue(r.Context(), csrfTokenKey, TestCSRFToken)
	return r.WithContext(ctx)
}

// NewFormRequestWithCSRF creates a form POST with a CSRF token in context.
// Use it for handlers that re-render forms on validation errors.
func NewFormRequestWithCSRF(target string, form url.Values) *http.Request {
	return WithCSRFToken(NewFormRequest(target, form))
}
