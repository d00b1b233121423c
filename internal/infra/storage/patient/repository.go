package patient

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
	"github.com/T-Nieb/OPD-BookingService/pkg/psqlbuilder"
	"github.com/T-Nieb/OPD-BookingService/pkg/txmanager"
)

// Repository stores and queries master patient records
type Repository struct {
	db txmanager.Executor
}

// NewRepository creates a patient repository
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

var patientColumns = []string{
	"id",
	"first_name",
	"last_name",
	"date_of_birth",
	"folder_number",
	"created_at",
	"updated_at",
}

// GetByFolderNumber looks up a patient by folder number, case-insensitively.
// The caller trims the input first.
func (r *Repository) GetByFolderNumber(ctx context.Context, folderNumber string) (*domain.Patient, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(patientColumns...).
		From("patients").
		Where(squirrel.Expr("LOWER(folder_number) = LOWER(?)", folderNumber)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByFolderNumber - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanPatient(executor.QueryRowContext(ctx, query, args...))
}

// Create inserts a new patient record
func (r *Repository) Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("patients").
		Columns(
			"first_name",
			"last_name",
			"date_of_birth",
			"folder_number",
		).
		Values(
			p.FirstName,
			p.LastName,
			p.DateOfBirth,
			p.FolderNumber,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if txmanager.IsUniqueViolation(err) {
			return nil, ErrDuplicateFolderNumber
		}
		if txmanager.IsSerializationFailure(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return p, nil
}

// UpdateDemographics overwrites the demographic fields of a patient.
// The folder number itself never changes.
func (r *Repository) UpdateDemographics(ctx context.Context, p *domain.Patient) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("patients").
		Set("first_name", p.FirstName).
		Set("last_name", p.LastName).
		Set("date_of_birth", p.DateOfBirth).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateDemographics - build update query: %v", ErrBuildQuery, err)
	}

	res, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			return err
		}
		return fmt.Errorf("%w: UpdateDemographics - execute update: %v", ErrExecQuery, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateDemographics - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrPatientNotFound
	}

	return nil
}

func (r *Repository) scanPatient(row *sql.Row) (*domain.Patient, error) {
	var p domain.Patient
	err := row.Scan(
		&p.ID,
		&p.FirstName,
		&p.LastName,
		&p.DateOfBirth,
		&p.FolderNumber,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		if txmanager.IsSerializationFailure(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: scan patient: %v", ErrScanRow, err)
	}
	return &p, nil
}
