package middleware

import (
	"net/http"

	"github.com/T-Nieb/OPD-BookingService/internal/api/handlers"
)

// RequireManageBookings rejects roles that may not work with the booking
// book itself. Clinic accounts keep access to availability lookups only.
// Runs after Auth, so a missing actor means a wiring mistake, not a user
// error.
func RequireManageBookings(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor, ok := ActorFromContext(r.Context())
			if !ok {
				handlers.RespondUnauthorized(w, "authentication required")
				return
			}
			if !actor.Role.CanManageBookings() {
				logger.Warn("%s %s - role=%s denied", r.Method, r.URL.Path, actor.Role)
				handlers.RespondForbidden(w, "your role may not access the booking book")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
