package patient_by_folder

import (
	"context"

	"github.com/T-Nieb/OPD-BookingService/internal/service/patients"
)

type PatientService interface {
	GetByFolderNumber(ctx context.Context, folderNumber string) (*patients.PatientResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
