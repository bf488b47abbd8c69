package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	"github.com/m04kA/KS-SharpeningService/pkg/dbmetrics"
	"github.com/m04kA/KS-SharpeningService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"user_id",
	"booking_date",
	"booking_time",
	"status",
	"total_quantity",
	"total_amount",
	"special_instructions",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями и их позициями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает бронирование вместе с позициями.
// Позиции - композиция бронирования и создаются только здесь.
// Вызывается внутри транзакции оформления заказа (транзакция
// передается через контекст).
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"user_id",
			"booking_date",
			"booking_time",
			"status",
			"total_quantity",
			"total_amount",
			"special_instructions",
		).
		Values(
			booking.UserID,
			booking.BookingDate,
			booking.BookingTime,
			booking.Status,
			booking.TotalQuantity,
			booking.TotalAmount,
			booking.SpecialInstructions,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	for i := range booking.Items {
		item := &booking.Items[i]
		item.BookingID = booking.ID

		itemQuery, itemArgs, err := psqlbuilder.Insert("booking_items").
			Columns(
				"booking_id",
				"knife_type_id",
				"knife_type_name",
				"quantity",
				"unit_price",
				"total_price",
				"insured",
			).
			Values(
				item.BookingID,
				item.KnifeTypeID,
				item.KnifeTypeName,
				item.Quantity,
				item.UnitPrice,
				item.TotalPrice,
				item.Insured,
			).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: Create - build item insert query: %v", ErrBuildQuery, err)
		}

		if err := executor.QueryRowContext(ctx, itemQuery, itemArgs...).Scan(&item.ID); err != nil {
			return nil, fmt.Errorf("%w: Create - execute item insert: %v", ErrExecQuery, err)
		}
	}

	return booking, nil
}

// GetByID получает бронирование по ID вместе с позициями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку для guarded-обновлений статуса
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := r.scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err != nil {
		return nil, err
	}

	items, err := r.loadItems(ctx, executor, booking.ID)
	if err != nil {
		return nil, err
	}
	booking.Items = items

	return booking, nil
}

// GetByUserID получает бронирования пользователя (новые первыми)
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}

	return r.attachItems(ctx, executor, bookings)
}

// List получает бронирования для админского списка с фильтрацией
// по статусу и пагинацией (новые первыми)
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
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

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}

	return r.attachItems(ctx, executor, bookings)
}

// CountByUserID возвращает количество бронирований пользователя
// Используется для проверки first-order-only купонов
func (r *Repository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountByUserID - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByUserID - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatusFrom переводит бронирование из статуса from в статус to.
// Guarded-обновление: если строка не в статусе from, возвращает
// ErrStatusConflict - переход проверяется атомарно в момент записи.
func (r *Repository) UpdateStatusFrom(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusFrom - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// Cancel отменяет бронирование с указанием причины
// Guard по нетерминальным статусам - отмена завершенного или уже
// отмененного бронирования возвращает ErrStatusConflict
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.BookingStatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": []string{
			string(domain.BookingStatusCompleted),
			string(domain.BookingStatusCancelled),
		}}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// loadItems загружает позиции бронирования
func (r *Repository) loadItems(ctx context.Context, executor DBExecutor, bookingID int64) ([]domain.BookingItem, error) {
	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"knife_type_id",
		"knife_type_name",
		"quantity",
		"unit_price",
		"total_price",
		"insured",
	).
		From("booking_items").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: loadItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadItems - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]domain.BookingItem, 0)
	for rows.Next() {
		var item domain.BookingItem
		err := rows.Scan(
			&item.ID,
			&item.BookingID,
			&item.KnifeTypeID,
			&item.KnifeTypeName,
			&item.Quantity,
			&item.UnitPrice,
			&item.TotalPrice,
			&item.Insured,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: loadItems - scan row: %v", ErrScanRow, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadItems - rows error: %v", ErrScanRow, err)
	}

	return items, nil
}

// attachItems загружает позиции для списка бронирований
func (r *Repository) attachItems(ctx context.Context, executor DBExecutor, bookings []*domain.Booking) ([]*domain.Booking, error) {
	for _, b := range bookings {
		items, err := r.loadItems(ctx, executor, b.ID)
		if err != nil {
			return nil, err
		}
		b.Items = items
	}
	return bookings, nil
}

// scanBooking сканирует одну строку бронирования
func (r *Repository) scanBooking(row *sql.Row) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.UserID,
		&booking.BookingDate,
		&booking.BookingTime,
		&booking.Status,
		&booking.TotalQuantity,
		&booking.TotalAmount,
		&booking.SpecialInstructions,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: scanBooking - scan row: %v", ErrScanRow, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.UserID,
			&booking.BookingDate,
			&booking.BookingTime,
			&booking.Status,
			&booking.TotalQuantity,
			&booking.TotalAmount,
			&booking.SpecialInstructions,
			&booking.CancellationReason,
			&booking.CancelledAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
