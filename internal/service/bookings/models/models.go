package models

import (
	"time"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
)

// BookingResponse is a booking flattened with its patient's demographics,
// the shape the day view renders.
type BookingResponse struct {
	ID              int64                      `json:"id"`
	FirstName       string                     `json:"firstName"`
	LastName        string                     `json:"lastName"`
	DateOfBirth     string                     `json:"dateOfBirth"`
	FolderNumber    string                     `json:"folderNumber"`
	ReferralSource  string                     `json:"referralSource"`
	AppointmentType domain.AppointmentCategory `json:"appointmentType"`
	Date            string                     `json:"date"`
	Status          domain.BookingStatus       `json:"status"`
	CreatedAt       time.Time                  `json:"createdAt"`
}

// BookingListResponse is the list wrapper for a day's bookings
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// FromDomainBookingWithPatient converts a joined row into the response shape
func FromDomainBookingWithPatient(bp *domain.BookingWithPatient) BookingResponse {
	return BookingResponse{
		ID:              bp.ID,
		FirstName:       bp.FirstName,
		LastName:        bp.LastName,
		DateOfBirth:     bp.DateOfBirth.Format(domain.DateFormat),
		FolderNumber:    bp.FolderNumber,
		ReferralSource:  bp.ReferralSource,
		AppointmentType: bp.AppointmentType,
		Date:            bp.AppointmentDate.Format(domain.DateFormat),
		Status:          bp.Status,
		CreatedAt:       bp.CreatedAt,
	}
}

// FromDomainBookingList converts a slice of joined rows
func FromDomainBookingList(bookings []*domain.BookingWithPatient) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, bp := range bookings {
		resp.Bookings = append(resp.Bookings, FromDomainBookingWithPatient(bp))
	}
	return resp
}

// DateCountEntry is one day's booking count for a category
type DateCountEntry struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// DateCountsResponse maps dates to counts for one appointment category
type DateCountsResponse struct {
	AppointmentType domain.AppointmentCategory `json:"appointmentType"`
	Counts          []DateCountEntry           `json:"counts"`
}

// FromDomainDateCounts converts the aggregation rows
func FromDomainDateCounts(category domain.AppointmentCategory, counts []domain.DateCount) *DateCountsResponse {
	resp := &DateCountsResponse{
		AppointmentType: category,
		Counts:          make([]DateCountEntry, 0, len(counts)),
	}
	for _, dc := range counts {
		resp.Counts = append(resp.Counts, DateCountEntry{
			Date:  dc.Date.Format(domain.DateFormat),
			Count: dc.Count,
		})
	}
	return resp
}

// ReferralCountEntry is one referral source's booking count for a day
type ReferralCountEntry struct {
	ReferralSource string `json:"referralSource"`
	Count          int    `json:"count"`
}

// ReferralCountsResponse maps referral sources to counts for one day
type ReferralCountsResponse struct {
	Date   string               `json:"date"`
	Counts []ReferralCountEntry `json:"counts"`
}

// FromDomainReferralCounts converts the aggregation rows
func FromDomainReferralCounts(date time.Time, counts []domain.ReferralCount) *ReferralCountsResponse {
	resp := &ReferralCountsResponse{
		Date:   date.Format(domain.DateFormat),
		Counts: make([]ReferralCountEntry, 0, len(counts)),
	}
	for _, rc := range counts {
		resp.Counts = append(resp.Counts, ReferralCountEntry{
			ReferralSource: rc.ReferralSource,
			Count:          rc.Count,
		})
	}
	return resp
}
