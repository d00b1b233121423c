package create_booking

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/T-Nieb/OPD-BookingService/internal/api/middleware"
	"github.com/T-Nieb/OPD-BookingService/internal/domain"
	createBooking "github.com/T-Nieb/OPD-BookingService/internal/usecase/create_booking"
)

type fakeUseCase struct {
	gotReq *createBooking.Request
	resp   *createBooking.Response
	err    error
}

func (f *fakeUseCase) Execute(_ context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	f.gotReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"firstName": "Thandi",
	"lastName": "Nkosi",
	"dateOfBirth": "1980-01-01",
	"folderNumber": "T12/123456",
	"referralSource": "GP",
	"appointmentType": "new",
	"date": "2025-07-07"
}`

func doRequest(t *testing.T, useCase *fakeUseCase, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewHandler(useCase, nopLogger{})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if authed {
		actor := domain.Actor{Username: "sister.m", Role: domain.RoleOPDAdmin}
		req = req.WithContext(middleware.WithActor(req.Context(), actor))
	}

	rec := httptest.NewRecorder()
	handler.Handle(rec, req)
	return rec
}

func TestHandle_Created(t *testing.T) {
	useCase := &fakeUseCase{resp: &createBooking.Response{
		ID:              42,
		PatientID:       7,
		FirstName:       "Thandi",
		LastName:        "Nkosi",
		DateOfBirth:     time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC),
		FolderNumber:    "T12/123456",
		ReferralSource:  "GP",
		AppointmentType: domain.CategoryNewPatient,
		AppointmentDate: time.Date(2025, time.July, 7, 0, 0, 0, 0, time.UTC),
		Status:          domain.StatusPending,
		CreatedAt:       time.Now(),
	}}

	rec := doRequest(t, useCase, validBody, true)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":42`)
	assert.Contains(t, rec.Body.String(), `"status":"pending"`)

	require.NotNil(t, useCase.gotReq)
	assert.Equal(t, "sister.m", useCase.gotReq.Actor.Username)
	assert.Equal(t, time.Date(2025, time.July, 7, 0, 0, 0, 0, time.UTC), useCase.gotReq.Date)
}

func TestHandle_Unauthenticated(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, validBody, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandle_MalformedBody(t *testing.T) {
	rec := doRequest(t, &fakeUseCase{}, `{"firstName":`, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandle_BadDate(t *testing.T) {
	body := strings.Replace(validBody, "2025-07-07", "07/07/2025", 1)
	rec := doRequest(t, &fakeUseCase{}, body, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "YYYY-MM-DD")
}

func TestHandle_CapacityExceeded(t *testing.T) {
	useCase := &fakeUseCase{err: createBooking.ErrCapacityExceeded}
	rec := doRequest(t, useCase, validBody, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "fully booked")
}

func TestHandle_ConcurrentConflict(t *testing.T) {
	useCase := &fakeUseCase{err: createBooking.ErrConflict}
	rec := doRequest(t, useCase, validBody, true)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandle_InternalError(t *testing.T) {
	useCase := &fakeUseCase{err: createBooking.ErrInternal}
	rec := doRequest(t, useCase, validBody, true)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "create_booking:", "internal details stay out of responses")
}
