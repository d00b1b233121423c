package get_bookings

import (
	"context"
	"time"

	"github.com/T-Nieb/OPD-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetByDate(ctx context.Context, date time.Time) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
