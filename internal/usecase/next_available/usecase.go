package next_available

import (
	"context"
	"fmt"
	"time"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
	"github.com/T-Nieb/OPD-BookingService/internal/schedule"
)

// UseCase answers "what is the earliest bookable date per category".
// Each category is searched independently; one full category never delays
// another's answer.
type UseCase struct {
	ledger       *schedule.Ledger
	horizonDays  int
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the next-available use case
func NewUseCase(
	bookingRepo BookingRepository,
	limits domain.CategoryLimits,
	logger Logger,
) *UseCase {
	return &UseCase{
		ledger:       schedule.NewLedger(bookingRepo, limits),
		horizonDays:  domain.DefaultSearchHorizonDays,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute runs the forward search for every category
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	today := uc.timeProvider.Now()
	resp := &Response{Dates: make(map[domain.AppointmentCategory]*time.Time, len(domain.AllCategories))}

	for _, category := range domain.AllCategories {
		date, found, err := schedule.NextAvailable(ctx, uc.ledger, category, today, uc.horizonDays)
		if err != nil {
			uc.logger.Error("NextAvailable: search failed for type=%s: %v", category, err)
			return nil, fmt.Errorf("%w: search for %s: %v", ErrInternal, category, err)
		}
		if !found {
			uc.logger.Warn("NextAvailable: no open date within %d days for type=%s", uc.horizonDays, category)
			resp.Dates[category] = nil
			continue
		}
		d := date
		resp.Dates[category] = &d
	}

	uc.logger.Info("NextAvailable: resolved dates for %d categories", len(domain.AllCategories))
	return resp, nil
}
