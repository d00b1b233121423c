package auth

import (
	"context"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
)

// UserRepository is the account storage the auth service reads
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// AuditLog records sign-ins
type AuditLog interface {
	Record(event string, fields map[string]interface{}) error
}

// Logger is the logging interface the service needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
