package schedule

import (
	"context"
	"time"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
)

// NextAvailable walks forward one day at a time from the day after "today"
// and returns the first date that is both eligible and not full for the
// category. The current day is never returned, even when it has open slots.
// Returns found=false when no date qualifies within horizonDays.
//
// "today" is caller-supplied rather than read from the system clock, so the
// search is deterministic: identical ledger contents and identical today
// always produce the same date.
func NextAvailable(
	ctx context.Context,
	ledger *Ledger,
	category domain.AppointmentCategory,
	today time.Time,
	horizonDays int,
) (time.Time, bool, error) {
	start := domain.NormalizeDate(today)

	for i := 1; i <= horizonDays; i++ {
		day := start.AddDate(0, 0, i)

		if !IsEligibleDate(day) {
			continue
		}

		full, err := ledger.IsFull(ctx, day, category)
		if err != nil {
			return time.Time{}, false, err
		}
		if !full {
			return day, true, nil
		}
	}

	return time.Time{}, false, nil
}
