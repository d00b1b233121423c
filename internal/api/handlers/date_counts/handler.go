package date_counts

import (
	"errors"
	"net/http"
	"time"

	"github.com/T-Nieb/OPD-BookingService/internal/api/handlers"
	"github.com/T-Nieb/OPD-BookingService/internal/domain"
	"github.com/T-Nieb/OPD-BookingService/internal/service/bookings"
)

const (
	msgMissingType = "type query parameter is required"
	msgInvalidType = "unknown appointment type"
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

// Handle GET /api/v1/bookings/date-counts?type=new
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	typeParam := r.URL.Query().Get("type")
	if typeParam == "" {
		handlers.RespondBadRequest(w, msgMissingType)
		return
	}

	result, err := h.service.DateCounts(r.Context(), domain.AppointmentCategory(typeParam), time.Now())
	if err != nil {
		if errors.Is(err, bookings.ErrInvalidInput) {
			h.logger.Warn("GET /bookings/date-counts - Unknown type=%q", typeParam)
			handlers.RespondBadRequest(w, msgInvalidType)
			return
		}
		h.logger.Error("GET /bookings/date-counts - Failed for type=%s: %v", typeParam, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
