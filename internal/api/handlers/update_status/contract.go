package update_status

import (
	"context"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
)

type BookingService interface {
	UpdateStatus(ctx context.Context, bookingID int64, newStatus domain.BookingStatus, actor domain.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
