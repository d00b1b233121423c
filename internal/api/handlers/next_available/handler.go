package next_available

import (
	"net/http"

	"github.com/T-Nieb/OPD-BookingService/internal/api/handlers"
	"github.com/T-Nieb/OPD-BookingService/internal/domain"
	nextAvailable "github.com/T-Nieb/OPD-BookingService/internal/usecase/next_available"
	"github.com/T-Nieb/OPD-BookingService/pkg/ptr"
)

// NextAvailableResponse maps each appointment type to its earliest bookable
// date. A null entry means nothing is open within the search horizon.
type NextAvailableResponse struct {
	Dates map[string]*string `json:"dates"`
}

type Handler struct {
	useCase NextAvailableUseCase
	logger  Logger
}

func NewHandler(useCase NextAvailableUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings/next-available
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("GET /bookings/next-available - Failed: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromUseCaseResponse(result))
}

func fromUseCaseResponse(resp *nextAvailable.Response) *NextAvailableResponse {
	out := &NextAvailableResponse{Dates: make(map[string]*string, len(resp.Dates))}
	for category, date := range resp.Dates {
		if date == nil {
			out.Dates[string(category)] = nil
			continue
		}
		out.Dates[string(category)] = ptr.Ptr(date.Format(domain.DateFormat))
	}
	return out
}
