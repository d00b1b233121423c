package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/T-Nieb/OPD-BookingService/internal/api/handlers"
	"github.com/T-Nieb/OPD-BookingService/internal/domain"
)

// SessionCookieName is the cookie the browser client carries its token in
const SessionCookieName = "token"

// TokenVerifier validates a session token and returns the actor behind it
type TokenVerifier interface {
	VerifyToken(token string) (domain.Actor, error)
}

// Logger is the logging interface the middleware needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type contextKey string

const actorKey contextKey = "actor"

// ActorFromContext returns the authenticated actor placed by Auth
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	return actor, ok
}

// WithActor returns a context carrying the actor. Exported for handler tests.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// Auth rejects requests without a valid session token and puts the actor
// into the request context. The token comes from the session cookie or,
// for non-browser clients, a bearer Authorization header.
func Auth(verifier TokenVerifier, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				logger.Warn("%s %s - missing session token", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, "authentication required")
				return
			}

			actor, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Warn("%s %s - rejected session token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, "invalid or expired session")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithActor(r.Context(), actor)))
		})
	}
}

func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}
