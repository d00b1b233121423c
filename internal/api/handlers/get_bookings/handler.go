package get_bookings

import (
	"net/http"
	"time"

	"github.com/T-Nieb/OPD-BookingService/internal/api/handlers"
	"github.com/T-Nieb/OPD-BookingService/internal/domain"
)

const (
	msgMissingDate = "date query parameter is required"
	msgInvalidDate = "invalid date format, expected YYYY-MM-DD"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	dateParam := r.URL.Query().Get("date")
	if dateParam == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.Parse(domain.DateFormat, dateParam)
	if err != nil {
		h.logger.Warn("GET /bookings - Invalid date=%q: %v", dateParam, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.GetByDate(r.Context(), date)
	if err != nil {
		h.logger.Error("GET /bookings - Failed to fetch bookings for date=%s: %v", dateParam, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
