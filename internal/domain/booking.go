package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// Valid returns true if the status is one of the known booking statuses
func (s BookingStatus) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Booking represents an OPD appointment booking.
// A booking references its patient; the patient record outlives any single
// booking and is shared between bookings with the same folder number.
type Booking struct {
	ID              int64
	PatientID       int64
	ReferralSource  string
	AppointmentType AppointmentCategory
	AppointmentDate time.Time // normalized to midnight UTC
	Status          BookingStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CanTransitionTo reports whether the status change is allowed.
// Only pending bookings move; completed and cancelled are terminal.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if b.Status != StatusPending {
		return false
	}
	return next == StatusCompleted || next == StatusCancelled
}

// BookingWithPatient is a booking flattened together with the demographics
// of its patient, the shape the day-view endpoint returns.
type BookingWithPatient struct {
	Booking

	FirstName    string
	LastName     string
	DateOfBirth  time.Time
	FolderNumber string
}

// DateCount is a per-day booking count for one appointment category
type DateCount struct {
	Date  time.Time
	Count int
}

// ReferralCount is a per-referral-source booking count for one calendar day
type ReferralCount struct {
	ReferralSource string
	Count          int
}
