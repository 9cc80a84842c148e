package dashboard

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BasicAuth validates HTTP Basic Auth credentials against a small
// allow-list of operator accounts, bcrypt-hashed up front so every
// request only pays a single CompareHashAndPassword. This is
// intentionally simple allow-listing, not a full user-account system.
type BasicAuth struct {
	operators map[string][]byte // username -> bcrypt hash
}

// NewBasicAuth builds an authenticator from username->bcryptHash pairs
// as already stored in Config.Dashboard.Operators.
func NewBasicAuth(operators map[string]string) (*BasicAuth, error) {
	hashes := make(map[string][]byte, len(operators))
	for user, hash := range operators {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("operator %q has an invalid bcrypt hash: %w", user, err)
		}
		hashes[user] = []byte(hash)
	}
	return &BasicAuth{operators: hashes}, nil
}

// Validate checks the Authorization header value against the
// allow-list, using a constant-time username compare and bcrypt's
// already-timing-safe hash compare.
func (a *BasicAuth) Validate(authHeader string) bool {
	if !strings.HasPrefix(authHeader, "Basic ") {
		return false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(authHeader, "Basic "))
	if err != nil {
		return false
	}
	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) != 2 {
		return false
	}
	user, pass := parts[0], parts[1]

	matched := false
	for knownUser, hash := range a.operators {
		if subtle.ConstantTimeCompare([]byte(user), []byte(knownUser)) == 1 {
			matched = bcrypt.CompareHashAndPassword(hash, []byte(pass)) == nil
		}
	}
	return matched
}

// Middleware enforces Basic auth on every request it wraps. Routes that
// must not require it (/metrics, which is IP-gated instead) are mounted
// outside it.
func (a *BasicAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Validate(r.Header.Get("Authorization")) {
			w.Header().Set("WWW-Authenticate", `Basic realm="WaveAlert360", charset="UTF-8"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
