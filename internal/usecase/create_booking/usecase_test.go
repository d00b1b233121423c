package create_booking

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
	patientRepo "github.com/T-Nieb/OPD-BookingService/internal/infra/storage/patient"
)

// memStore is an in-memory stand-in for the booking and patient
// repositories. Patients are keyed by lower-cased folder number, matching
// the case-insensitive unique index.
type memStore struct {
	mu       sync.Mutex
	bookings []*domain.Booking
	patients map[string]*domain.Patient
	nextID   int64

	createErr error // returned by Create, simulating a driver failure
	countErr  error // returned by CountByDateAndCategory
}

func newMemStore() *memStore {
	return &memStore{patients: make(map[string]*domain.Patient)}
}

func (s *memStore) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return nil, s.createErr
	}
	s.nextID++
	b.ID = s.nextID
	b.CreatedAt = time.Now()
	copied := *b
	s.bookings = append(s.bookings, &copied)
	return b, nil
}

func (s *memStore) CountByDateAndCategory(_ context.Context, date time.Time, category domain.AppointmentCategory) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.countErr != nil {
		return 0, s.countErr
	}
	count := 0
	for _, b := range s.bookings {
		if b.AppointmentType == category && domain.SameDay(b.AppointmentDate, date) {
			count++
		}
	}
	return count, nil
}

func (s *memStore) GetByFolderNumber(_ context.Context, folderNumber string) (*domain.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.patients[strings.ToLower(folderNumber)]
	if !ok {
		return nil, patientRepo.ErrPatientNotFound
	}
	copied := *p
	return &copied, nil
}

func (s *memStore) CreatePatient(_ context.Context, p *domain.Patient) (*domain.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(p.FolderNumber)
	if _, exists := s.patients[key]; exists {
		return nil, patientRepo.ErrDuplicateFolderNumber
	}
	s.nextID++
	p.ID = s.nextID
	copied := *p
	s.patients[key] = &copied
	return p, nil
}

func (s *memStore) UpdateDemographics(_ context.Context, p *domain.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(p.FolderNumber)
	stored, ok := s.patients[key]
	if !ok {
		return patientRepo.ErrPatientNotFound
	}
	stored.FirstName = p.FirstName
	stored.LastName = p.LastName
	stored.DateOfBirth = p.DateOfBirth
	return nil
}

// patientAdapter separates the two repository interfaces the use case takes
type patientAdapter struct{ *memStore }

func (a patientAdapter) Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error) {
	return a.CreatePatient(ctx, p)
}

// serialTxManager serializes admissions the way the database's serializable
// isolation does, with a single mutex
type serialTxManager struct{ mu sync.Mutex }

func (m *serialTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx)
}

type recordingAudit struct {
	mu      sync.Mutex
	entries []map[string]interface{}
}

func (a *recordingAudit) Record(event string, fields map[string]interface{}) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	copied := map[string]interface{}{"event": event}
	for k, v := range fields {
		copied[k] = v
	}
	a.entries = append(a.entries, copied)
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(store *memStore, audit *recordingAudit) *UseCase {
	return NewUseCase(
		store,
		patientAdapter{store},
		domain.DefaultCategoryLimits(),
		&serialTxManager{},
		audit,
		nopLogger{},
	)
}

func validRequest() *Request {
	return &Request{
		FirstName:       "Thandi",
		LastName:        "Nkosi",
		DateOfBirth:     time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC),
		FolderNumber:    "T12/123456",
		ReferralSource:  "GP",
		AppointmentType: domain.CategoryNewPatient,
		Date:            time.Date(2025, time.July, 7, 0, 0, 0, 0, time.UTC),
		Actor:           domain.Actor{Username: "sister.m", Role: domain.RoleOPDAdmin},
	}
}

func TestExecute_CreatesPatientAndBooking(t *testing.T) {
	store := newMemStore()
	audit := &recordingAudit{}
	uc := newTestUseCase(store, audit)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.Equal(t, "T12/123456", resp.FolderNumber)
	require.Len(t, store.bookings, 1)
	assert.Equal(t, resp.PatientID, store.bookings[0].PatientID)

	// Round-trip: lookup by folder number is case-insensitive and returns
	// the same demographics.
	found, err := store.GetByFolderNumber(context.Background(), "t12/123456")
	require.NoError(t, err)
	assert.Equal(t, "Thandi", found.FirstName)
	assert.Equal(t, "Nkosi", found.LastName)

	require.Len(t, audit.entries, 1)
	assert.Equal(t, "create_booking", audit.entries[0]["event"])
	assert.Equal(t, "sister.m", audit.entries[0]["username"])
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing first name", func(r *Request) { r.FirstName = "  " }},
		{"malformed folder number", func(r *Request) { r.FolderNumber = "T12-123456" }},
		{"folder number missing letter", func(r *Request) { r.FolderNumber = "12/123456" }},
		{"unknown appointment type", func(r *Request) { r.AppointmentType = "walk-in" }},
		{"empty referral source", func(r *Request) { r.ReferralSource = "" }},
		{"zero date", func(r *Request) { r.Date = time.Time{} }},
		{"zero date of birth", func(r *Request) { r.DateOfBirth = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemStore()
			audit := &recordingAudit{}
			uc := newTestUseCase(store, audit)

			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, store.bookings, "rejected request must not persist")
			assert.Empty(t, audit.entries, "rejections are not audited")
		})
	}
}

func TestExecute_CapacityExceeded(t *testing.T) {
	store := newMemStore()
	audit := &recordingAudit{}
	uc := newTestUseCase(store, audit)

	req := validRequest()
	limit := domain.DefaultCategoryLimits().Limit(req.AppointmentType)

	for i := 0; i < limit; i++ {
		store.bookings = append(store.bookings, &domain.Booking{
			AppointmentType: req.AppointmentType,
			AppointmentDate: domain.NormalizeDate(req.Date),
			Status:          domain.StatusPending,
		})
	}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
	assert.Len(t, store.bookings, limit, "full day must not gain a booking")
	assert.Empty(t, audit.entries)
}

func TestExecute_CancelledBookingsStillOccupySlots(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store, &recordingAudit{})

	req := validRequest()
	limit := domain.DefaultCategoryLimits().Limit(req.AppointmentType)

	// Fill the day entirely with cancelled bookings: the ledger counts
	// every status, so the day is still full.
	for i := 0; i < limit; i++ {
		store.bookings = append(store.bookings, &domain.Booking{
			AppointmentType: req.AppointmentType,
			AppointmentDate: domain.NormalizeDate(req.Date),
			Status:          domain.StatusCancelled,
		})
	}

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestExecute_UpsertByFolderRefreshesDemographics(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store, &recordingAudit{})

	first := validRequest()
	_, err := uc.Execute(context.Background(), first)
	require.NoError(t, err)

	// Same folder number, new surname, later date: same patient record.
	second := validRequest()
	second.LastName = "Dlamini"
	second.Date = second.Date.AddDate(0, 0, 2)

	resp, err := uc.Execute(context.Background(), second)
	require.NoError(t, err)

	require.Len(t, store.patients, 1, "upsert must not create a second patient")
	stored, err := store.GetByFolderNumber(context.Background(), "T12/123456")
	require.NoError(t, err)
	assert.Equal(t, "Dlamini", stored.LastName)
	assert.Equal(t, stored.ID, resp.PatientID)
	assert.Len(t, store.bookings, 2)
}

func TestExecute_MidStatementSerializationFailureIsConflict(t *testing.T) {
	// Postgres raises 40001 during the INSERT or the capacity COUNT, not
	// only at commit. Either way the caller must see the retryable
	// conflict, never an internal error.
	t.Run("on insert", func(t *testing.T) {
		store := newMemStore()
		store.createErr = &pq.Error{Code: "40001"}
		uc := newTestUseCase(store, &recordingAudit{})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrConflict)
	})

	t.Run("on capacity count", func(t *testing.T) {
		store := newMemStore()
		store.countErr = &pq.Error{Code: "40001"}
		uc := newTestUseCase(store, &recordingAudit{})

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrConflict)
	})
}

func TestExecute_ConcurrentAdmissionsNeverExceedLimit(t *testing.T) {
	store := newMemStore()
	uc := newTestUseCase(store, &recordingAudit{})

	req := validRequest()
	limit := domain.DefaultCategoryLimits().Limit(req.AppointmentType)
	day := domain.NormalizeDate(req.Date)

	// Leave only 3 open slots, then race limit+5 admissions at the day.
	for i := 0; i < limit-3; i++ {
		store.bookings = append(store.bookings, &domain.Booking{
			AppointmentType: req.AppointmentType,
			AppointmentDate: day,
			Status:          domain.StatusPending,
		})
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		rejected int
	)
	for i := 0; i < limit+5; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			r := validRequest()
			r.FolderNumber = "T12/" + string(rune('1'+n%9)) + "00"
			if _, err := uc.Execute(context.Background(), r); err != nil {
				mu.Lock()
				rejected++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	count, err := store.CountByDateAndCategory(context.Background(), day, req.AppointmentType)
	require.NoError(t, err)
	assert.Equal(t, limit, count, "persisted bookings must never exceed the daily limit")
	assert.Equal(t, limit+5-3, rejected)
}
