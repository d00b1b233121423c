package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidFolderNumber(t *testing.T) {
	tests := []struct {
		folderNumber string
		want         bool
	}{
		{"T12/123456", true},
		{"a01/1", true},
		{"  T12/123456  ", true}, // surrounding whitespace is tolerated
		{"12/123456", false},     // missing leading letter
		{"T1/123456", false},     // only one digit before the slash
		{"T12-123456", false},    // wrong separator
		{"T12/", false},          // nothing after the slash
		{"TT2/123", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.folderNumber, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidFolderNumber(tt.folderNumber))
		})
	}
}

func TestBooking_CanTransitionTo(t *testing.T) {
	pending := &Booking{Status: StatusPending}
	assert.True(t, pending.CanTransitionTo(StatusCompleted))
	assert.True(t, pending.CanTransitionTo(StatusCancelled))
	assert.False(t, pending.CanTransitionTo(StatusPending))

	// completed and cancelled are terminal
	completed := &Booking{Status: StatusCompleted}
	assert.False(t, completed.CanTransitionTo(StatusCancelled))
	cancelled := &Booking{Status: StatusCancelled}
	assert.False(t, cancelled.CanTransitionTo(StatusCompleted))
}

func TestPatient_DemographicsDiffer(t *testing.T) {
	dob := time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)
	p := &Patient{FirstName: "Thandi", LastName: "Nkosi", DateOfBirth: dob}

	assert.False(t, p.DemographicsDiffer("Thandi", "Nkosi", dob))
	assert.True(t, p.DemographicsDiffer("Thandi", "Dlamini", dob))
	assert.True(t, p.DemographicsDiffer("Thandi", "Nkosi", dob.AddDate(1, 0, 0)))

	// Same calendar day at a different clock time is not a difference
	assert.False(t, p.DemographicsDiffer("Thandi", "Nkosi", dob.Add(6*time.Hour)))
}

func TestNormalizeDate(t *testing.T) {
	ts := time.Date(2025, time.July, 2, 14, 35, 12, 999, time.UTC)
	got := NormalizeDate(ts)
	assert.Equal(t, time.Date(2025, time.July, 2, 0, 0, 0, 0, time.UTC), got)
}
