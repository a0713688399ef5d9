package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/lexhub-io/lexhub/internal/core"
	"github.com/lexhub-io/lexhub/internal/models"
	"github.com/lexhub-io/lexhub/internal/services"
)

// fakeUserDB implements just the user operations; the embedded interface
// panics on anything else, which no auth path should reach.
type fakeUserDB struct {
	core.DbClient
	users map[string]*models.User
}

func newFakeUserDB() *fakeUserDB {
	return &fakeUserDB{users: make(map[string]*models.User)}
}

func (f *fakeUserDB) CreateUser(ctx context.Context, user *models.User) error {
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return f.users[email], nil
}

func TestSignupSetsTimestamps(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newFakeUserDB()
	h := NewAuthHandler(services.NewUserService(db))

	req := httptest.NewRequest("POST", "/api/signup",
		strings.NewReader(`{"email":"a@b.c","password":"hunter2"}`))
	rec := httptest.NewRecorder()
	h.Signup(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["token"] == "" {
		t.Error("expected a token in the response")
	}

	user := db.users["a@b.c"]
	if user == nil {
		t.Fatal("user not persisted")
	}
	if user.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}
	if user.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not set")
	}
}

func TestLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := newFakeUserDB()
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.DefaultCost)
	db.users["a@b.c"] = &models.User{ID: "u1", Email: "a@b.c", PasswordHash: string(hash)}
	h := NewAuthHandler(services.NewUserService(db))

	req := httptest.NewRequest("POST", "/api/login",
		strings.NewReader(`{"email":"a@b.c","password":"hunter2"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	req = httptest.NewRequest("POST", "/api/login",
		strings.NewReader(`{"email":"a@b.c","password":"wrong"}`))
	rec = httptest.NewRecorder()
	h.Login(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for bad password", rec.Code)
	}

	req = httptest.NewRequest("POST", "/api/login",
		strings.NewReader(`{"email":"missing@b.c","password":"hunter2"}`))
	rec = httptest.NewRecorder()
	h.Login(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401 for unknown user", rec.Code)
	}
}
