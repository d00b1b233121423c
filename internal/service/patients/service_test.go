package patients

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
	patientRepo "github.com/T-Nieb/OPD-BookingService/internal/infra/storage/patient"
)

type fakePatients struct {
	patients map[string]*domain.Patient // keyed lower-case
}

func (f *fakePatients) GetByFolderNumber(_ context.Context, folderNumber string) (*domain.Patient, error) {
	p, ok := f.patients[strings.ToLower(folderNumber)]
	if !ok {
		return nil, patientRepo.ErrPatientNotFound
	}
	return p, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() *Service {
	return NewService(&fakePatients{patients: map[string]*domain.Patient{
		"t12/123456": {
			ID:           1,
			FirstName:    "Thandi",
			LastName:     "Nkosi",
			DateOfBirth:  time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC),
			FolderNumber: "T12/123456",
		},
	}}, nopLogger{})
}

func TestGetByFolderNumber_TrimsAndIgnoresCase(t *testing.T) {
	svc := newTestService()

	for _, input := range []string{"T12/123456", "t12/123456", "  T12/123456  "} {
		resp, err := svc.GetByFolderNumber(context.Background(), input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, "Thandi", resp.FirstName)
		assert.Equal(t, "1980-01-01", resp.DateOfBirth)
	}
}

func TestGetByFolderNumber_NotFound(t *testing.T) {
	svc := newTestService()

	_, err := svc.GetByFolderNumber(context.Background(), "Z99/1")
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestGetByFolderNumber_Malformed(t *testing.T) {
	svc := newTestService()

	for _, input := range []string{"", "T12-123456", "12/123456", "T1/123456"} {
		_, err := svc.GetByFolderNumber(context.Background(), input)
		assert.ErrorIs(t, err, ErrInvalidFolderNumber, "input %q", input)
	}
}
