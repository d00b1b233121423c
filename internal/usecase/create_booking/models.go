package create_booking

import (
	"time"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
)

// Request carries the booking admission input
type Request struct {
	FirstName       string
	LastName        string
	DateOfBirth     time.Time
	FolderNumber    string
	ReferralSource  string
	AppointmentType domain.AppointmentCategory
	Date            time.Time
	Actor           domain.Actor
}

// Response is the created booking together with its resolved patient
type Response struct {
	ID              int64
	PatientID       int64
	FirstName       string
	LastName        string
	DateOfBirth     time.Time
	FolderNumber    string
	ReferralSource  string
	AppointmentType domain.AppointmentCategory
	AppointmentDate time.Time
	Status          domain.BookingStatus
	CreatedAt       time.Time
}
