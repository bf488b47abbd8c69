package payment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	"github.com/m04kA/KS-SharpeningService/pkg/dbmetrics"
	"github.com/m04kA/KS-SharpeningService/pkg/psqlbuilder"
)

var paymentColumns = []string{
	"id",
	"booking_id",
	"amount",
	"discount_amount",
	"insurance_amount",
	"method",
	"status",
	"deposit_deadline",
	"depositor_name",
	"deposit_reported_at",
	"customer_bank_name",
	"customer_account_number",
	"confirmed_at",
	"confirmed_amount",
	"deposit_date",
	"bank_transaction_id",
	"confirmation_note",
	"confirmed_by",
	"amount_mismatch",
	"created_at",
	"updated_at",
}

// ConfirmParams параметры админского подтверждения платежа
type ConfirmParams struct {
	ConfirmedAmount   int64
	DepositDate       time.Time
	BankTransactionID *string
	ConfirmationNote  *string
	ConfirmedBy       int64
	AmountMismatch    bool
}

// Repository репозиторий для работы с платежами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает платеж в статусе pending
// Вызывается только в транзакции оформления заказа вместе с созданием
// бронирования и списанием купона
func (r *Repository) Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"booking_id",
			"amount",
			"discount_amount",
			"insurance_amount",
			"method",
			"status",
			"deposit_deadline",
		).
		Values(
			payment.BookingID,
			payment.Amount,
			payment.DiscountAmount,
			payment.InsuranceAmount,
			payment.Method,
			payment.Status,
			payment.DepositDeadline,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&payment.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	payment.CreatedAt = createdAt.Time
	payment.UpdatedAt = updatedAt.Time

	return payment, nil
}

// GetByID получает платеж по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByBookingID получает платеж по ID бронирования (связь 1:1)
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error) {
	return r.getOne(ctx, squirrel.Eq{"booking_id": bookingID})
}

// List получает платежи для админского списка с фильтрацией
// по статусу и пагинацией (новые первыми)
func (r *Repository) List(ctx context.Context, filter domain.PaymentsFilter) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(paymentColumns...).
		From("payments").
		OrderBy("created_at DESC").
		Limit(uint64(filter.PageLimit())).
		Offset(uint64(filter.Offset()))

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanPayments(rows)
}

// ConfirmPending переводит платеж pending -> confirmed.
// Guard по статусу pending: из двух конкурентных подтверждений
// выигрывает первое, второе получает ErrStatusConflict.
func (r *Repository) ConfirmPending(ctx context.Context, id int64, params ConfirmParams) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentStatusConfirmed).
		Set("confirmed_at", squirrel.Expr("NOW()")).
		Set("confirmed_amount", params.ConfirmedAmount).
		Set("deposit_date", params.DepositDate).
		Set("bank_transaction_id", params.BankTransactionID).
		Set("confirmation_note", params.ConfirmationNote).
		Set("confirmed_by", params.ConfirmedBy).
		Set("amount_mismatch", params.AmountMismatch).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.PaymentStatusPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ConfirmPending - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, "ConfirmPending")
}

// FailPending переводит платеж pending -> rejected|cancelled|failed
// с обязательной причиной. Guard по статусу pending.
func (r *Repository) FailPending(ctx context.Context, id int64, status domain.PaymentStatus, note string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", status).
		Set("confirmation_note", note).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.PaymentStatusPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: FailPending - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, "FailPending")
}

// MarkDepositReported записывает сигнал клиента "депозит внесен".
// Это НЕ переход статуса - подтверждение остается за админом.
// Guard по статусу pending.
func (r *Repository) MarkDepositReported(ctx context.Context, id int64, depositorName string, bankName, accountNumber *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("depositor_name", depositorName).
		Set("deposit_reported_at", squirrel.Expr("NOW()")).
		Set("customer_bank_name", bankName).
		Set("customer_account_number", accountNumber).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.PaymentStatusPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkDepositReported - build update query: %v", ErrBuildQuery, err)
	}

	return r.execGuarded(ctx, executor, query, args, "MarkDepositReported")
}

// ExpirePending переводит все pending платежи с истекшим дедлайном
// в терминальный статус expired и возвращает их.
// Используется фоновой задачей очистки.
func (r *Repository) ExpirePending(ctx context.Context, now time.Time) ([]*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentStatusExpired).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"status": domain.PaymentStatusPending}).
		Where(squirrel.Lt{"deposit_deadline": now}).
		Suffix("RETURNING " + joinColumns(paymentColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ExpirePending - build update query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ExpirePending - execute update: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanPayments(rows)
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq) (*domain.Payment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(where)

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - build select query: %v", ErrBuildQuery, err)
	}

	payment, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: getOne - scan payment: %v", ErrScanRow, err)
	}

	return payment, nil
}

func (r *Repository) execGuarded(ctx context.Context, executor dbmetrics.DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var p domain.Payment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.BookingID,
		&p.Amount,
		&p.DiscountAmount,
		&p.InsuranceAmount,
		&p.Method,
		&p.Status,
		&p.DepositDeadline,
		&p.DepositorName,
		&p.DepositReportedAt,
		&p.CustomerBankName,
		&p.CustomerAccountNumber,
		&p.ConfirmedAt,
		&p.ConfirmedAmount,
		&p.DepositDate,
		&p.BankTransactionID,
		&p.ConfirmationNote,
		&p.ConfirmedBy,
		&p.AmountMismatch,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time

	return &p, nil
}

func (r *Repository) scanPayments(rows *sql.Rows) ([]*domain.Payment, error) {
	payments := make([]*domain.Payment, 0)

	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanPayments - scan row: %v", ErrScanRow, err)
		}
		payments = append(payments, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanPayments - rows error: %v", ErrScanRow, err)
	}

	return payments, nil
}

func joinColumns(columns []string) string {
	out := ""
	for i, c := range columns {
		if i > 0 {
			out += ", "
		}
		out += c
	}
	return out
}
