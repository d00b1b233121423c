package date_counts

import (
	"context"
	"time"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
	"github.com/T-Nieb/OPD-BookingService/internal/service/bookings/models"
)

type BookingService interface {
	DateCounts(ctx context.Context, category domain.AppointmentCategory, today time.Time) (*models.DateCountsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
