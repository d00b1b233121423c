package create_booking

import (
	"fmt"
	"strings"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
)

// validateRequest applies the structural checks. Validation runs before any
// capacity or storage work so malformed requests never reach the database.
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return fmt.Errorf("%w: firstName is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.LastName) == "" {
		return fmt.Errorf("%w: lastName is required", ErrInvalidInput)
	}

	if req.DateOfBirth.IsZero() {
		return fmt.Errorf("%w: dateOfBirth is required", ErrInvalidInput)
	}

	if !domain.ValidFolderNumber(req.FolderNumber) {
		return fmt.Errorf("%w: folderNumber must match letter + 2 digits + '/' + digits, e.g. T12/123456", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ReferralSource) == "" {
		return fmt.Errorf("%w: referralSource is required", ErrInvalidInput)
	}

	if !req.AppointmentType.Valid() {
		return fmt.Errorf("%w: appointmentType must be one of new, review, chronic", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
