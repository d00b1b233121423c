package schedule

import (
	"context"
	"time"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
)

// SlotCounter reports how many bookings exist for a (calendar day, category)
// pair. Implemented by the booking repository; the count covers the window
// [midnight, midnight+1day) on the given day.
//
// The count includes bookings of every status, cancelled ones too.
// TODO(product): confirm whether cancelled bookings should release their slot.
type SlotCounter interface {
	CountByDateAndCategory(ctx context.Context, date time.Time, category domain.AppointmentCategory) (int, error)
}

// Ledger answers capacity questions for (date, category) pairs against the
// clinic's fixed per-category daily limits. Read-only; admission re-checks
// capacity inside its own transaction at write time.
type Ledger struct {
	counter SlotCounter
	limits  domain.CategoryLimits
}

// NewLedger creates a capacity ledger over the given counter and limits
func NewLedger(counter SlotCounter, limits domain.CategoryLimits) *Ledger {
	return &Ledger{
		counter: counter,
		limits:  limits,
	}
}

// Limit returns the daily booking limit for the category
func (l *Ledger) Limit(category domain.AppointmentCategory) int {
	return l.limits.Limit(category)
}

// CountBooked returns the number of bookings taken on the day for the category
func (l *Ledger) CountBooked(ctx context.Context, date time.Time, category domain.AppointmentCategory) (int, error) {
	return l.counter.CountByDateAndCategory(ctx, domain.NormalizeDate(date), category)
}

// Remaining returns how many slots are still open on the day for the
// category. Can be negative if the limit was ever exceeded.
func (l *Ledger) Remaining(ctx context.Context, date time.Time, category domain.AppointmentCategory) (int, error) {
	count, err := l.CountBooked(ctx, date, category)
	if err != nil {
		return 0, err
	}
	return l.Limit(category) - count, nil
}

// IsFull reports whether the day has no open slots for the category
func (l *Ledger) IsFull(ctx context.Context, date time.Time, category domain.AppointmentCategory) (bool, error) {
	count, err := l.CountBooked(ctx, date, category)
	if err != nil {
		return false, err
	}
	return count >= l.Limit(category), nil
}
