package create_booking

import (
	"errors"
	"net/http"

	"github.com/T-Nieb/OPD-BookingService/internal/api/handlers"
	"github.com/T-Nieb/OPD-BookingService/internal/api/middleware"
	createBooking "github.com/T-Nieb/OPD-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDate        = "invalid date format, expected YYYY-MM-DD"
	msgInvalidInput       = "invalid booking details"
	msgCapacityExceeded   = "the selected date is fully booked for this appointment type"
	msgConflict           = "another booking was admitted at the same moment, please retry"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "authentication required")
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: folder=%s: %v", req.FolderNumber, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrCapacityExceeded):
			h.logger.Warn("POST /bookings - Day full: date=%s type=%s", req.Date, req.AppointmentType)
			handlers.RespondBadRequest(w, msgCapacityExceeded)

		case errors.Is(err, createBooking.ErrConflict):
			h.logger.Warn("POST /bookings - Concurrent admission conflict: date=%s type=%s", req.Date, req.AppointmentType)
			handlers.RespondError(w, http.StatusConflict, msgConflict)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: folder=%s, error=%v", req.FolderNumber, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, folder=%s, date=%s",
		result.ID, result.FolderNumber, req.Date)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
