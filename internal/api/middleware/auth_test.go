package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
)

type fakeVerifier struct {
	validToken string
	actor      domain.Actor
}

func (f *fakeVerifier) VerifyToken(token string) (domain.Actor, error) {
	if token == f.validToken {
		return f.actor, nil
	}
	return domain.Actor{}, errors.New("invalid token")
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestAuth_CookieToken(t *testing.T) {
	verifier := &fakeVerifier{
		validToken: "good-token",
		actor:      domain.Actor{Username: "sister.m", Role: domain.RoleOPDAdmin},
	}

	var seen domain.Actor
	chain := Auth(verifier, nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = ActorFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "good-token"})
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sister.m", seen.Username)
	assert.Equal(t, domain.RoleOPDAdmin, seen.Role)
}

func TestAuth_BearerToken(t *testing.T) {
	verifier := &fakeVerifier{validToken: "good-token"}
	chain := Auth(verifier, nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_MissingToken(t *testing.T) {
	verifier := &fakeVerifier{validToken: "good-token"}
	chain := Auth(verifier, nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuth_BadToken(t *testing.T) {
	verifier := &fakeVerifier{validToken: "good-token"}
	chain := Auth(verifier, nopLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a rejected token")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged"})
	rec := httptest.NewRecorder()
	chain.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
