package create_booking

import (
	"context"
	"time"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
)

// BookingRepository is the booking storage the admission path needs
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
	CountByDateAndCategory(ctx context.Context, date time.Time, category domain.AppointmentCategory) (int, error)
}

// PatientRepository resolves and maintains master patient records
type PatientRepository interface {
	GetByFolderNumber(ctx context.Context, folderNumber string) (*domain.Patient, error)
	Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error)
	UpdateDemographics(ctx context.Context, p *domain.Patient) error
}

// TransactionManager runs the capacity check and the insert as one
// serializable unit, so two concurrent admissions cannot both pass the
// capacity check for the last open slot
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AuditLog records successful admissions; rejections are not audited
type AuditLog interface {
	Record(event string, fields map[string]interface{}) error
}

// Logger is the logging interface the use case needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
