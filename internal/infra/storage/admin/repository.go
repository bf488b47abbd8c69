package admin

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	"github.com/m04kA/KS-SharpeningService/pkg/dbmetrics"
	"github.com/m04kA/KS-SharpeningService/pkg/psqlbuilder"
)

var adminColumns = []string{
	"id",
	"email",
	"password_hash",
	"name",
	"role",
	"is_active",
	"last_login_at",
	"created_at",
}

// Repository репозиторий аккаунтов администраторов
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория администраторов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает аккаунт администратора
func (r *Repository) Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("admins").
		Columns(
			"email",
			"password_hash",
			"name",
			"role",
			"is_active",
		).
		Values(
			admin.Email,
			admin.PasswordHash,
			admin.Name,
			admin.Role,
			admin.IsActive,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&admin.ID, &admin.CreatedAt)
	if err != nil {
		// 23505 = unique_violation (уникальный индекс на email)
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return admin, nil
}

// GetByEmail получает администратора по email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

// GetByID получает администратора по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Admin, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// SetActive включает или выключает аккаунт администратора
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("admins").
		Set("is_active", active).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAdminNotFound
	}

	return nil
}

// UpdateLastLogin фиксирует время последнего входа
func (r *Repository) UpdateLastLogin(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("admins").
		Set("last_login_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateLastLogin - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpdateLastLogin - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Admin, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(adminColumns...).
		From("admins").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	var admin domain.Admin
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&admin.ID,
		&admin.Email,
		&admin.PasswordHash,
		&admin.Name,
		&admin.Role,
		&admin.IsActive,
		&admin.LastLoginAt,
		&admin.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan admin: %v", ErrScanRow, err)
	}

	return &admin, nil
}
