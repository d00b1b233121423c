package patient_by_folder

import (
	"errors"
	"net/http"

	"github.com/T-Nieb/OPD-BookingService/internal/api/handlers"
	"github.com/T-Nieb/OPD-BookingService/internal/service/patients"
)

const (
	msgMissingFolder = "folderNumber query parameter is required"
	msgInvalidFolder = "invalid folder number format"
	msgNotFound      = "no patient on file for this folder number"
)

type Handler struct {
	service PatientService
	logger  Logger
}

func NewHandler(service PatientService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/patients/by-folder?folderNumber=T12/123456
// The folder number rides in a query parameter because it contains a slash.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	folderNumber := r.URL.Query().Get("folderNumber")
	if folderNumber == "" {
		handlers.RespondBadRequest(w, msgMissingFolder)
		return
	}

	result, err := h.service.GetByFolderNumber(r.Context(), folderNumber)
	if err != nil {
		switch {
		case errors.Is(err, patients.ErrInvalidFolderNumber):
			h.logger.Warn("GET /patients/by-folder - Malformed folder=%q", folderNumber)
			handlers.RespondBadRequest(w, msgInvalidFolder)

		case errors.Is(err, patients.ErrPatientNotFound):
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /patients/by-folder - Failed for folder=%s: %v", folderNumber, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
