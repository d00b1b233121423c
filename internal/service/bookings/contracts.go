package bookings

import (
	"context"
	"time"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
)

// BookingRepository is the storage surface the booking service reads and
// mutates
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByDateWithPatients(ctx context.Context, date time.Time) ([]*domain.BookingWithPatient, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	DeleteByID(ctx context.Context, id int64) error
	DateCounts(ctx context.Context, category domain.AppointmentCategory, from, to time.Time) ([]domain.DateCount, error)
	ReferralCounts(ctx context.Context, date time.Time) ([]domain.ReferralCount, error)
}

// AuditLog records who changed what
type AuditLog interface {
	Record(event string, fields map[string]interface{}) error
}

// Logger is the logging interface the service needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
