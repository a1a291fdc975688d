package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFirebaseAuthRejectsBadHeaders(t *testing.T) {
	m := NewMiddleware(nil)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token abc123"},
		{"no token", "Bearer"},
		{"extra parts", "Bearer abc 123"},
	}

	for _, tc := range cases {
		nextCalled := false
		handler := m.FirebaseAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextCalled = true
		}))

		req := httptest.NewRequest(http.MethodGet, "/transactions", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if nextCalled {
			t.Fatalf("%s: next handler should not run", tc.name)
		}
		if rr.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401, got %d", tc.name, rr.Code)
		}
	}
}

func TestUIDDefaultsToEmpty(t *testing.T) {
	if got := UID(context.Background()); got != "" {
		t.Fatalf("expected empty UID outside auth group, got %q", got)
	}

	ctx := context.WithValue(context.Background(), UIDKey, "uid-1")
	if got := UID(ctx); got != "uid-1" {
		t.Fatalf("UID mismatch: %q", got)
	}
}
