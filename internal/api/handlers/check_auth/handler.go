package check_auth

import (
	"net/http"

	"github.com/T-Nieb/OPD-BookingService/internal/api/handlers"
	"github.com/T-Nieb/OPD-BookingService/internal/api/middleware"
)

// CheckResponse identifies the account behind the current session
type CheckResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	logger Logger
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Handle GET /api/v1/auth/check
// Runs behind the auth middleware; reaching it means the session is valid.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		h.logger.Error("GET /auth/check - no actor in context")
		handlers.RespondUnauthorized(w, "authentication required")
		return
	}

	handlers.RespondJSON(w, http.StatusOK, CheckResponse{
		Username: actor.Username,
		Role:     string(actor.Role),
	})
}
