package next_available

import (
	"time"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
)

// Response holds the next available date per category. A nil entry means no
// date within the search horizon had an open slot.
type Response struct {
	Dates map[domain.AppointmentCategory]*time.Time
}
