package next_available

import (
	"context"

	nextAvailable "github.com/T-Nieb/OPD-BookingService/internal/usecase/next_available"
)

type NextAvailableUseCase interface {
	Execute(ctx context.Context) (*nextAvailable.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
