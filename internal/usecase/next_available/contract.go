package next_available

import (
	"context"
	"time"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
)

// BookingRepository is the slot counter the availability search reads from
type BookingRepository interface {
	CountByDateAndCategory(ctx context.Context, date time.Time, category domain.AppointmentCategory) (int, error)
}

// TimeProvider supplies "today" for the forward search (swapped out in tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface the use case needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production time provider
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
