package bankaccount

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	"github.com/m04kA/KS-SharpeningService/pkg/dbmetrics"
	"github.com/m04kA/KS-SharpeningService/pkg/psqlbuilder"
)

var accountColumns = []string{
	"id",
	"bank_name",
	"account_number",
	"account_holder",
	"is_default",
	"description",
	"created_at",
	"updated_at",
}

// Repository репозиторий принимающих банковских счетов платформы
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория счетов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает банковский счет
func (r *Repository) Create(ctx context.Context, account *domain.BankAccount) (*domain.BankAccount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bank_accounts").
		Columns(
			"bank_name",
			"account_number",
			"account_holder",
			"is_default",
			"description",
		).
		Values(
			account.BankName,
			account.AccountNumber,
			account.AccountHolder,
			account.IsDefault,
			account.Description,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&account.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return account, nil
}

// List получает все счета (счет по умолчанию первым)
func (r *Repository) List(ctx context.Context) ([]*domain.BankAccount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(accountColumns...).
		From("bank_accounts").
		OrderBy("is_default DESC, id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	accounts := make([]*domain.BankAccount, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		accounts = append(accounts, account)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return accounts, nil
}

// GetDefault получает счет по умолчанию
// Это счет, который показывается клиентам для банковского перевода
func (r *Repository) GetDefault(ctx context.Context) (*domain.BankAccount, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(accountColumns...).
		From("bank_accounts").
		Where(squirrel.Eq{"is_default": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetDefault - build select query: %v", ErrBuildQuery, err)
	}

	account, err := scanAccount(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrNoDefaultAccount
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDefault - scan account: %v", ErrScanRow, err)
	}

	return account, nil
}

// UnsetDefaultAll снимает флаг по умолчанию со всех счетов
// Вызывается только вместе с SetDefault в одной транзакции -
// инвариант "ровно один счет по умолчанию" обеспечивается парой
// этих вызовов под транзакцией
func (r *Repository) UnsetDefaultAll(ctx context.Context) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bank_accounts").
		Set("is_default", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"is_default": true}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UnsetDefaultAll - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UnsetDefaultAll - execute update: %v", ErrExecQuery, err)
	}

	return nil
}

// SetDefault назначает счет счетом по умолчанию
func (r *Repository) SetDefault(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bank_accounts").
		Set("is_default", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetDefault - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetDefault - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetDefault - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAccountNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAccount(row rowScanner) (*domain.BankAccount, error) {
	var account domain.BankAccount
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&account.ID,
		&account.BankName,
		&account.AccountNumber,
		&account.AccountHolder,
		&account.IsDefault,
		&account.Description,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	account.CreatedAt = createdAt.Time
	account.UpdatedAt = updatedAt.Time

	return &account, nil
}
