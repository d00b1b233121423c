package login

import (
	"context"
	"time"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	TokenTTL() time.Duration
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
