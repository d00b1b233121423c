package patients

import (
	"context"
	"errors"
	"fmt"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
	patientRepo "github.com/T-Nieb/OPD-BookingService/internal/infra/storage/patient"
)

// PatientResponse is the demographics payload the booking form prefills with
type PatientResponse struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	DateOfBirth  string `json:"dateOfBirth"`
	FolderNumber string `json:"folderNumber"`
}

// Service answers patient lookups by folder number
type Service struct {
	patientRepo PatientRepository
	logger      Logger
}

// NewService creates the patient service
func NewService(patientRepo PatientRepository, logger Logger) *Service {
	return &Service{patientRepo: patientRepo, logger: logger}
}

// GetByFolderNumber returns the patient filed under the folder number.
// The lookup trims whitespace and matches case-insensitively.
func (s *Service) GetByFolderNumber(ctx context.Context, folderNumber string) (*PatientResponse, error) {
	trimmed := domain.TrimFolderNumber(folderNumber)
	if !domain.ValidFolderNumber(trimmed) {
		s.logger.Warn("GetByFolderNumber: malformed folder number %q", folderNumber)
		return nil, fmt.Errorf("%w: %q", ErrInvalidFolderNumber, folderNumber)
	}

	patient, err := s.patientRepo.GetByFolderNumber(ctx, trimmed)
	if err != nil {
		if errors.Is(err, patientRepo.ErrPatientNotFound) {
			s.logger.Info("GetByFolderNumber: no patient for folder=%s", trimmed)
			return nil, ErrPatientNotFound
		}
		s.logger.Error("GetByFolderNumber: repository error for folder=%s: %v", trimmed, err)
		return nil, fmt.Errorf("%w: GetByFolderNumber - repository error: %v", ErrInternal, err)
	}

	return &PatientResponse{
		ID:           patient.ID,
		FirstName:    patient.FirstName,
		LastName:     patient.LastName,
		DateOfBirth:  patient.DateOfBirth.Format(domain.DateFormat),
		FolderNumber: patient.FolderNumber,
	}, nil
}
