package patients

import (
	"context"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
)

// PatientRepository is the storage surface the patient service reads
type PatientRepository interface {
	GetByFolderNumber(ctx context.Context, folderNumber string) (*domain.Patient, error)
}

// Logger is the logging interface the service needs
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
