package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret, userID string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestJWTMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	var gotID string
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = UserIDFromContext(r.Context())
	})

	// Valid token attaches the user ID.
	req := httptest.NewRequest("GET", "/api/documents", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", "user-1"))
	rec := httptest.NewRecorder()
	JWTMiddleware(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !gotOK || gotID != "user-1" {
		t.Errorf("user id = (%q, %v), want (user-1, true)", gotID, gotOK)
	}

	// Missing token is rejected before the handler runs.
	gotOK = false
	req = httptest.NewRequest("GET", "/api/documents", nil)
	rec = httptest.NewRecorder()
	JWTMiddleware(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}

	// Wrong secret is rejected.
	req = httptest.NewRequest("GET", "/api/documents", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "other-secret", "user-1"))
	rec = httptest.NewRecorder()
	JWTMiddleware(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for bad signature", rec.Code)
	}
}

func TestOptionalJWTMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	var gotID string
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, gotOK = UserIDFromContext(r.Context())
	})

	// No token passes through anonymously.
	req := httptest.NewRequest("POST", "/api/documents", nil)
	rec := httptest.NewRecorder()
	OptionalJWTMiddleware(next).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for anonymous request", rec.Code)
	}
	if gotOK {
		t.Errorf("anonymous request carried user id %q", gotID)
	}

	// A valid token attaches the owner.
	req = httptest.NewRequest("POST", "/api/documents", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "test-secret", "user-2"))
	rec = httptest.NewRecorder()
	OptionalJWTMiddleware(next).ServeHTTP(rec, req)
	if !gotOK || gotID != "user-2" {
		t.Errorf("user id = (%q, %v), want (user-2, true)", gotID, gotOK)
	}
}
