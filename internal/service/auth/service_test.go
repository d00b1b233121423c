package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
	userRepo "github.com/T-Nieb/OPD-BookingService/internal/infra/storage/user"
)

type fakeUsers struct {
	users map[string]*domain.User
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	u, ok := f.users[username]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

type nopAudit struct{ events []string }

func (a *nopAudit) Record(event string, _ map[string]interface{}) error {
	a.events = append(a.events, event)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(t *testing.T, ttl time.Duration) (*Service, *nopAudit) {
	t.Helper()

	hash, err := HashPassword("correct horse")
	require.NoError(t, err)

	users := &fakeUsers{users: map[string]*domain.User{
		"sister.m": {ID: 1, Username: "sister.m", PasswordHash: hash, Role: domain.RoleOPDAdmin},
	}}
	audit := &nopAudit{}
	return NewService(users, audit, nopLogger{}, "test-secret", ttl), audit
}

func TestLogin_IssuesVerifiableToken(t *testing.T) {
	svc, audit := newTestService(t, 8*time.Hour)

	token, user, err := svc.Login(context.Background(), "sister.m", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOPDAdmin, user.Role)
	assert.Equal(t, []string{"login"}, audit.events)

	actor, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "sister.m", actor.Username)
	assert.Equal(t, domain.RoleOPDAdmin, actor.Role)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, audit := newTestService(t, 8*time.Hour)

	_, _, err := svc.Login(context.Background(), "sister.m", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Empty(t, audit.events, "failed sign-ins are not audited as logins")
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, _ := newTestService(t, 8*time.Hour)

	_, _, err := svc.Login(context.Background(), "nobody", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyToken_Expired(t *testing.T) {
	svc, _ := newTestService(t, -time.Minute)

	token, _, err := svc.Login(context.Background(), "sister.m", "correct horse")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyToken_Garbage(t *testing.T) {
	svc, _ := newTestService(t, 8*time.Hour)

	for _, tok := range []string{"", "not-a-jwt", "aaa.bbb.ccc"} {
		_, err := svc.VerifyToken(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}
}

func TestVerifyToken_WrongSecret(t *testing.T) {
	svc, _ := newTestService(t, 8*time.Hour)
	token, _, err := svc.Login(context.Background(), "sister.m", "correct horse")
	require.NoError(t, err)

	other := NewService(&fakeUsers{users: map[string]*domain.User{}}, &nopAudit{}, nopLogger{}, "other-secret", 8*time.Hour)
	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
