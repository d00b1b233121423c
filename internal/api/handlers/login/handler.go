package login

import (
	"errors"
	"net/http"

	"github.com/T-Nieb/OPD-BookingService/internal/api/handlers"
	"github.com/T-Nieb/OPD-BookingService/internal/api/middleware"
	"github.com/T-Nieb/OPD-BookingService/internal/service/auth"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgMissingCredentials = "username and password are required"
	msgInvalidCredentials = "invalid username or password"
)

type Handler struct {
	authService AuthService
	logger      Logger
}

func NewHandler(authService AuthService, logger Logger) *Handler {
	return &Handler{
		authService: authService,
		logger:      logger,
	}
}

// Handle POST /api/v1/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.Username == "" || req.Password == "" {
		handlers.RespondBadRequest(w, msgMissingCredentials)
		return
	}

	token, user, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.Warn("POST /auth/login - Rejected sign-in for username=%s", req.Username)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)
			return
		}
		h.logger.Error("POST /auth/login - Sign-in failed for username=%s: %v", req.Username, err)
		handlers.RespondInternalError(w)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.authService.TokenTTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	h.logger.Info("POST /auth/login - username=%s role=%s signed in", user.Username, user.Role)
	handlers.RespondJSON(w, http.StatusOK, LoginResponse{
		Username: user.Username,
		Role:     string(user.Role),
	})
}
