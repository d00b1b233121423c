package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/T-Nieb/OPD-BookingService/internal/domain"
	"github.com/T-Nieb/OPD-BookingService/pkg/psqlbuilder"
	"github.com/T-Nieb/OPD-BookingService/pkg/txmanager"
)

// Repository stores staff login accounts
type Repository struct {
	db txmanager.Executor
}

// NewRepository creates a user repository
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// GetByUsername fetches a user by exact username
func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"username",
		"password_hash",
		"role",
	).
		From("users").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUsername - build select query: %v", ErrBuildQuery, err)
	}

	var u domain.User
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Role,
	)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUsername - scan user: %v", ErrScanRow, err)
	}

	return &u, nil
}

// Create inserts a new user account
func (r *Repository) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("users").
		Columns("username", "password_hash", "role").
		Values(u.Username, u.PasswordHash, u.Role).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&u.ID); err != nil {
		if txmanager.IsUniqueViolation(err) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return u, nil
}

// Count returns the total number of user accounts. The seeding tool only
// creates the initial master user on an empty table.
func (r *Repository) Count(ctx context.Context) (int, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").From("users").ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: Count - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: Count - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}
