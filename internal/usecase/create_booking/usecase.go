package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
	patientRepo "github.com/T-Nieb/OPD-BookingService/internal/infra/storage/patient"
	"github.com/T-Nieb/OPD-BookingService/internal/schedule"
	"github.com/T-Nieb/OPD-BookingService/pkg/txmanager"
)

// UseCase is the booking admission path: structural validation, capacity
// check, patient upsert-by-folder and booking insert, in that order. The
// capacity check and both writes run in one serializable transaction.
type UseCase struct {
	bookingRepo BookingRepository
	patientRepo PatientRepository
	ledger      *schedule.Ledger
	txManager   TransactionManager
	auditLog    AuditLog
	logger      Logger
}

// NewUseCase creates the booking admission use case
func NewUseCase(
	bookingRepo BookingRepository,
	patientRepo PatientRepository,
	limits domain.CategoryLimits,
	txManager TransactionManager,
	auditLog AuditLog,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		patientRepo: patientRepo,
		ledger:      schedule.NewLedger(bookingRepo, limits),
		txManager:   txManager,
		auditLog:    auditLog,
		logger:      logger,
	}
}

// Execute admits a booking request
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: actor=%s folder=%s type=%s date=%s",
		req.Actor.Username, req.FolderNumber, req.AppointmentType, req.Date.Format(domain.DateFormat))

	// 1. Structural validation
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	folderNumber := domain.TrimFolderNumber(req.FolderNumber)
	appointmentDate := domain.NormalizeDate(req.Date)

	var (
		createdBooking  *domain.Booking
		resolvedPatient *domain.Patient
	)

	// 2-4. Capacity check, patient resolution and insert share one
	// serializable transaction: a concurrent admission for the same
	// (date, category) fails to commit instead of over-booking the day.
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2. Capacity check
		full, err := uc.ledger.IsFull(txCtx, appointmentDate, req.AppointmentType)
		if err != nil {
			return wrapInternal("capacity check", err)
		}
		if full {
			return fmt.Errorf("%w: %s on %s", ErrCapacityExceeded,
				req.AppointmentType, appointmentDate.Format(domain.DateFormat))
		}

		// 3. Patient resolution: upsert by folder number
		patient, err := uc.resolvePatient(txCtx, req, folderNumber)
		if err != nil {
			return err
		}

		// 4. Persist the booking
		booking := &domain.Booking{
			PatientID:       patient.ID,
			ReferralSource:  req.ReferralSource,
			AppointmentType: req.AppointmentType,
			AppointmentDate: appointmentDate,
			Status:          domain.StatusPending,
		}
		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			return wrapInternal("create booking", err)
		}

		createdBooking = created
		resolvedPatient = patient
		return nil
	})
	if err != nil {
		switch {
		case txmanager.IsSerializationFailure(err):
			// Lost the race against a concurrent admission. Distinct from
			// capacity-full: retrying the identical request once is safe.
			uc.logger.Warn("CreateBooking: serialization conflict for type=%s date=%s",
				req.AppointmentType, appointmentDate.Format(domain.DateFormat))
			return nil, ErrConflict
		case errors.Is(err, patientRepo.ErrDuplicateFolderNumber):
			// Two first-time bookings for the same folder raced on the
			// patient insert; on retry the patient exists.
			uc.logger.Warn("CreateBooking: concurrent patient creation for folder=%s", folderNumber)
			return nil, ErrConflict
		default:
			return nil, err
		}
	}

	uc.logger.Info("CreateBooking: created booking id=%d for folder=%s", createdBooking.ID, folderNumber)

	if err := uc.auditLog.Record("create_booking", map[string]interface{}{
		"username":        req.Actor.Username,
		"role":            string(req.Actor.Role),
		"folderNumber":    folderNumber,
		"appointmentType": string(req.AppointmentType),
		"appointmentDate": appointmentDate.Format(domain.DateFormat),
		"bookingId":       createdBooking.ID,
	}); err != nil {
		// The booking is committed; a failed audit write must not undo it.
		uc.logger.Error("CreateBooking: audit write failed for booking id=%d: %v", createdBooking.ID, err)
	}

	return &Response{
		ID:              createdBooking.ID,
		PatientID:       resolvedPatient.ID,
		FirstName:       resolvedPatient.FirstName,
		LastName:        resolvedPatient.LastName,
		DateOfBirth:     resolvedPatient.DateOfBirth,
		FolderNumber:    resolvedPatient.FolderNumber,
		ReferralSource:  createdBooking.ReferralSource,
		AppointmentType: createdBooking.AppointmentType,
		AppointmentDate: createdBooking.AppointmentDate,
		Status:          createdBooking.Status,
		CreatedAt:       createdBooking.CreatedAt,
	}, nil
}

// resolvePatient looks the patient up by folder number, creating the record
// on first contact and refreshing demographics when they changed.
func (uc *UseCase) resolvePatient(ctx context.Context, req *Request, folderNumber string) (*domain.Patient, error) {
	dateOfBirth := domain.NormalizeDate(req.DateOfBirth)

	patient, err := uc.patientRepo.GetByFolderNumber(ctx, folderNumber)
	if err != nil {
		if !errors.Is(err, patientRepo.ErrPatientNotFound) {
			return nil, wrapInternal("patient lookup", err)
		}

		created, err := uc.patientRepo.Create(ctx, &domain.Patient{
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			DateOfBirth:  dateOfBirth,
			FolderNumber: folderNumber,
		})
		if err != nil {
			if errors.Is(err, patientRepo.ErrDuplicateFolderNumber) {
				return nil, err
			}
			return nil, wrapInternal("create patient", err)
		}
		uc.logger.Info("CreateBooking: created patient id=%d folder=%s", created.ID, folderNumber)
		return created, nil
	}

	if patient.DemographicsDiffer(req.FirstName, req.LastName, dateOfBirth) {
		patient.FirstName = req.FirstName
		patient.LastName = req.LastName
		patient.DateOfBirth = dateOfBirth
		if err := uc.patientRepo.UpdateDemographics(ctx, patient); err != nil {
			return nil, wrapInternal("update patient demographics", err)
		}
		uc.logger.Info("CreateBooking: refreshed demographics for patient id=%d", patient.ID)
	}

	return patient, nil
}

// wrapInternal tags unexpected storage errors as ErrInternal. Serialization
// failures pass through untouched: %v would flatten the pq error chain and
// make them unrecognizable to the errors.As check that maps them to
// ErrConflict after the transaction.
func wrapInternal(op string, err error) error {
	if txmanager.IsSerializationFailure(err) {
		return err
	}
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}
