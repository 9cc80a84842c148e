package dashboard

import (
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt.GenerateFromPassword: %v", err)
	}
	return string(hash)
}

func basicHeader(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func TestBasicAuthValidateAcceptsKnownOperator(t *testing.T) {
	auth, err := NewBasicAuth(map[string]string{"ranger": mustHash(t, "s3cret")})
	if err != nil {
		t.Fatalf("NewBasicAuth() error = %v", err)
	}
	if !auth.Validate(basicHeader("ranger", "s3cret")) {
		t.Error("expected valid credentials to be accepted")
	}
}

func TestBasicAuthValidateRejectsWrongPassword(t *testing.T) {
	auth, err := NewBasicAuth(map[string]string{"ranger": mustHash(t, "s3cret")})
	if err != nil {
		t.Fatalf("NewBasicAuth() error = %v", err)
	}
	if auth.Validate(basicHeader("ranger", "wrong")) {
		t.Error("expected wrong password to be rejected")
	}
}

func TestBasicAuthValidateRejectsUnknownUser(t *testing.T) {
	auth, err := NewBasicAuth(map[string]string{"ranger": mustHash(t, "s3cret")})
	if err != nil {
		t.Fatalf("NewBasicAuth() error = %v", err)
	}
	if auth.Validate(basicHeader("intruder", "s3cret")) {
		t.Error("expected unknown user to be rejected")
	}
}

func TestBasicAuthMiddlewareChallengesMissingHeader(t *testing.T) {
	auth, err := NewBasicAuth(map[string]string{"ranger": mustHash(t, "s3cret")})
	if err != nil {
		t.Fatalf("NewBasicAuth() error = %v", err)
	}
	handler := auth.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if rec.Header().Get("WWW-Authenticate") == "" {
		t.Error("expected WWW-Authenticate header on 401")
	}
}

func TestNewBasicAuthRejectsInvalidHash(t *testing.T) {
	if _, err := NewBasicAuth(map[string]string{"ranger": "not-a-bcrypt-hash"}); err == nil {
		t.Error("expected NewBasicAuth to reject a malformed bcrypt hash")
	}
}
