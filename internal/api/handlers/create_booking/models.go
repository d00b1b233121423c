package create_booking

import (
	"time"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
	createBooking "github.com/T-Nieb/OPD-BookingService/internal/usecase/create_booking"
)

// CreateBookingRequest is the HTTP request model
type CreateBookingRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	DateOfBirth     string `json:"dateOfBirth"` // "1980-01-01"
	FolderNumber    string `json:"folderNumber"`
	ReferralSource  string `json:"referralSource"`
	AppointmentType string `json:"appointmentType"`
	Date            string `json:"date"` // "2025-07-07"
}

// BookingResponse is the HTTP response model
type BookingResponse struct {
	ID              int64  `json:"id"`
	PatientID       int64  `json:"patientId"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	DateOfBirth     string `json:"dateOfBirth"`
	FolderNumber    string `json:"folderNumber"`
	ReferralSource  string `json:"referralSource"`
	AppointmentType string `json:"appointmentType"`
	Date            string `json:"date"`
	Status          string `json:"status"`
	CreatedAt       string `json:"createdAt"`
}

// ToUseCaseRequest parses the date fields and builds the use case request
func (r *CreateBookingRequest) ToUseCaseRequest(actor domain.Actor) (*createBooking.Request, error) {
	dateOfBirth, err := time.Parse(domain.DateFormat, r.DateOfBirth)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		FirstName:       r.FirstName,
		LastName:        r.LastName,
		DateOfBirth:     dateOfBirth,
		FolderNumber:    r.FolderNumber,
		ReferralSource:  r.ReferralSource,
		AppointmentType: domain.AppointmentCategory(r.AppointmentType),
		Date:            date,
		Actor:           actor,
	}, nil
}

// FromUseCaseResponse converts the use case response to the HTTP model
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		PatientID:       resp.PatientID,
		FirstName:       resp.FirstName,
		LastName:        resp.LastName,
		DateOfBirth:     resp.DateOfBirth.Format(domain.DateFormat),
		FolderNumber:    resp.FolderNumber,
		ReferralSource:  resp.ReferralSource,
		AppointmentType: string(resp.AppointmentType),
		Date:            resp.AppointmentDate.Format(domain.DateFormat),
		Status:          string(resp.Status),
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
