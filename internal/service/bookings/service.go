package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
	bookingRepo "github.com/T-Nieb/OPD-BookingService/internal/infra/storage/booking"
	"github.com/T-Nieb/OPD-BookingService/internal/service/bookings/models"
)

// Service covers the booking list and administration operations: the day
// view, status changes, deletions and the reporting aggregations. Admission
// of new bookings lives in the create_booking use case because it needs the
// serializable capacity check.
type Service struct {
	bookingRepo BookingRepository
	audit       AuditLog
	logger      Logger
}

// NewService creates the booking service
func NewService(bookingRepo BookingRepository, audit AuditLog, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		audit:       audit,
		logger:      logger,
	}
}

// GetByDate returns the bookings of one calendar day joined with patient
// demographics, ordered by category then folder number.
func (s *Service) GetByDate(ctx context.Context, date time.Time) (*models.BookingListResponse, error) {
	s.logger.Info("GetByDate: fetching bookings for date=%s", date.Format(domain.DateFormat))

	bookings, err := s.bookingRepo.GetByDateWithPatients(ctx, date)
	if err != nil {
		s.logger.Error("GetByDate: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: GetByDate - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByDate: fetched %d bookings for date=%s", len(bookings), date.Format(domain.DateFormat))
	return models.FromDomainBookingList(bookings), nil
}

// UpdateStatus moves a booking from pending to completed or cancelled.
// Clinic users are read-only; hospital, opd_admin and master may change
// statuses.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, newStatus domain.BookingStatus, actor domain.Actor) error {
	s.logger.Info("UpdateStatus: booking id=%d to status=%s by user=%s", bookingID, newStatus, actor.Username)

	if !actor.Role.CanManageBookings() {
		s.logger.Warn("UpdateStatus: role=%s may not change booking statuses", actor.Role)
		return ErrAccessDenied
	}

	if !newStatus.Valid() {
		s.logger.Warn("UpdateStatus: unknown status=%s for booking id=%d", newStatus, bookingID)
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, newStatus)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if !booking.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: booking id=%d cannot move %s -> %s", bookingID, booking.Status, newStatus)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, newStatus)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if err := s.audit.Record("update_status", map[string]interface{}{
		"username":  actor.Username,
		"role":      string(actor.Role),
		"bookingId": bookingID,
		"from":      string(booking.Status),
		"to":        string(newStatus),
	}); err != nil {
		s.logger.Error("UpdateStatus: audit write failed for booking id=%d: %v", bookingID, err)
	}

	s.logger.Info("UpdateStatus: booking id=%d is now %s", bookingID, newStatus)
	return nil
}

// Delete removes a booking outright. Only the master role may delete;
// everyone else cancels via UpdateStatus, which keeps the slot occupied.
func (s *Service) Delete(ctx context.Context, bookingID int64, actor domain.Actor) error {
	s.logger.Info("Delete: booking id=%d by user=%s", bookingID, actor.Username)

	if !actor.Role.CanDeleteBookings() {
		s.logger.Warn("Delete: role=%s may not delete bookings", actor.Role)
		return ErrAccessDenied
	}

	if err := s.bookingRepo.DeleteByID(ctx, bookingID); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Delete: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Delete: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	if err := s.audit.Record("delete_booking", map[string]interface{}{
		"username":  actor.Username,
		"role":      string(actor.Role),
		"bookingId": bookingID,
	}); err != nil {
		s.logger.Error("Delete: audit write failed for booking id=%d: %v", bookingID, err)
	}

	s.logger.Info("Delete: booking id=%d removed", bookingID)
	return nil
}

// DateCounts returns per-day booking counts for one category over the next
// search horizon, starting tomorrow. The booking form shades its calendar
// with these.
func (s *Service) DateCounts(ctx context.Context, category domain.AppointmentCategory, today time.Time) (*models.DateCountsResponse, error) {
	if !category.Valid() {
		s.logger.Warn("DateCounts: unknown appointment type=%s", category)
		return nil, fmt.Errorf("%w: unknown appointment type %q", ErrInvalidInput, category)
	}

	from := domain.NormalizeDate(today).AddDate(0, 0, 1)
	to := from.AddDate(0, 0, domain.DefaultSearchHorizonDays)

	counts, err := s.bookingRepo.DateCounts(ctx, category, from, to)
	if err != nil {
		s.logger.Error("DateCounts: repository error for type=%s: %v", category, err)
		return nil, fmt.Errorf("%w: DateCounts - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DateCounts: %d dates with bookings for type=%s", len(counts), category)
	return models.FromDomainDateCounts(category, counts), nil
}

// ReferralCounts returns booking counts grouped by referral source for one
// calendar day
func (s *Service) ReferralCounts(ctx context.Context, date time.Time) (*models.ReferralCountsResponse, error) {
	counts, err := s.bookingRepo.ReferralCounts(ctx, date)
	if err != nil {
		s.logger.Error("ReferralCounts: repository error for date=%s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: ReferralCounts - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ReferralCounts: %d referral sources for date=%s", len(counts), date.Format(domain.DateFormat))
	return models.FromDomainReferralCounts(date, counts), nil
}
