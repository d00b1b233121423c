package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
	"github.com/T-Nieb/OPD-BookingService/pkg/psqlbuilder"
	"github.com/T-Nieb/OPD-BookingService/pkg/txmanager"
)

// Repository stores and queries bookings
type Repository struct {
	db DBExecutor
}

// NewRepository creates a booking repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new booking. When the context carries a transaction
// (the admission path runs the capacity check and the insert inside one
// serializable transaction) the insert joins it.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"patient_id",
			"referral_source",
			"appointment_type",
			"appointment_date",
			"status",
		).
		Values(
			b.PatientID,
			b.ReferralSource,
			b.AppointmentType,
			b.AppointmentDate,
			b.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)
	if err != nil {
		// Postgres raises serialization failures mid-statement as well as
		// at commit; pass them through unwrapped so the admission path can
		// classify them as retryable.
		if txmanager.IsSerializationFailure(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID fetches a single booking
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"patient_id",
		"referral_source",
		"appointment_type",
		"appointment_date",
		"status",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.Booking
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&b.PatientID,
		&b.ReferralSource,
		&b.AppointmentType,
		&b.AppointmentDate,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return &b, nil
}

// CountByDateAndCategory counts bookings in the calendar-day window
// [midnight, midnight+1day) for one category. Every status is counted,
// cancelled bookings included.
func (r *Repository) CountByDateAndCategory(ctx context.Context, date time.Time, category domain.AppointmentCategory) (int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	dayStart := domain.NormalizeDate(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.GtOrEq{"appointment_date": dayStart}).
		Where(squirrel.Lt{"appointment_date": dayEnd}).
		Where(squirrel.Eq{"appointment_type": category}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByDateAndCategory - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		if txmanager.IsSerializationFailure(err) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: CountByDateAndCategory - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetByDateWithPatients returns the bookings of one calendar day joined
// with patient demographics, ordered by category then folder number.
func (r *Repository) GetByDateWithPatients(ctx context.Context, date time.Time) ([]*domain.BookingWithPatient, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	dayStart := domain.NormalizeDate(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query, args, err := psqlbuilder.Select(
		"b.id",
		"b.patient_id",
		"b.referral_source",
		"b.appointment_type",
		"b.appointment_date",
		"b.status",
		"b.created_at",
		"b.updated_at",
		"p.first_name",
		"p.last_name",
		"p.date_of_birth",
		"p.folder_number",
	).
		From("bookings b").
		Join("patients p ON p.id = b.patient_id").
		Where(squirrel.GtOrEq{"b.appointment_date": dayStart}).
		Where(squirrel.Lt{"b.appointment_date": dayEnd}).
		OrderBy("b.appointment_type ASC", "p.folder_number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateWithPatients - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDateWithPatients - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.BookingWithPatient, 0)
	for rows.Next() {
		var bp domain.BookingWithPatient
		if err := rows.Scan(
			&bp.ID,
			&bp.PatientID,
			&bp.ReferralSource,
			&bp.AppointmentType,
			&bp.AppointmentDate,
			&bp.Status,
			&bp.CreatedAt,
			&bp.UpdatedAt,
			&bp.FirstName,
			&bp.LastName,
			&bp.DateOfBirth,
			&bp.FolderNumber,
		); err != nil {
			return nil, fmt.Errorf("%w: GetByDateWithPatients - scan row: %v", ErrScanRow, err)
		}
		result = append(result, &bp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDateWithPatients - iterate rows: %v", ErrExecQuery, err)
	}

	return result, nil
}

// UpdateStatus sets the status of a booking
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// DeleteByID hard-deletes a booking. There is no tombstone; deletion is the
// master role's correction tool, not a cancellation.
func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByID - build delete query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteByID - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteByID - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// DateCounts returns per-day booking counts for one category over
// [from, to), the shape the booking form's calendar shading needs.
func (r *Repository) DateCounts(ctx context.Context, category domain.AppointmentCategory, from, to time.Time) ([]domain.DateCount, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"appointment_date",
		"COUNT(*)",
	).
		From("bookings").
		Where(squirrel.Eq{"appointment_type": category}).
		Where(squirrel.GtOrEq{"appointment_date": domain.NormalizeDate(from)}).
		Where(squirrel.Lt{"appointment_date": domain.NormalizeDate(to)}).
		GroupBy("appointment_date").
		OrderBy("appointment_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: DateCounts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: DateCounts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make([]domain.DateCount, 0)
	for rows.Next() {
		var dc domain.DateCount
		if err := rows.Scan(&dc.Date, &dc.Count); err != nil {
			return nil, fmt.Errorf("%w: DateCounts - scan row: %v", ErrScanRow, err)
		}
		counts = append(counts, dc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: DateCounts - iterate rows: %v", ErrExecQuery, err)
	}

	return counts, nil
}

// ReferralCounts returns booking counts grouped by referral source for one
// calendar day
func (r *Repository) ReferralCounts(ctx context.Context, date time.Time) ([]domain.ReferralCount, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	dayStart := domain.NormalizeDate(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query, args, err := psqlbuilder.Select(
		"referral_source",
		"COUNT(*)",
	).
		From("bookings").
		Where(squirrel.GtOrEq{"appointment_date": dayStart}).
		Where(squirrel.Lt{"appointment_date": dayEnd}).
		GroupBy("referral_source").
		OrderBy("referral_source ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ReferralCounts - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ReferralCounts - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	counts := make([]domain.ReferralCount, 0)
	for rows.Next() {
		var rc domain.ReferralCount
		if err := rows.Scan(&rc.ReferralSource, &rc.Count); err != nil {
			return nil, fmt.Errorf("%w: ReferralCounts - scan row: %v", ErrScanRow, err)
		}
		counts = append(counts, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ReferralCounts - iterate rows: %v", ErrExecQuery, err)
	}

	return counts, nil
}
