package coupon

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

// Столбцы выданного купона вместе с присоединенным шаблоном
var userCouponJoinColumns = []string{
	"uc.id",
	"uc.coupon_id",
	"uc.user_id",
	"uc.code",
	"uc.issued_at",
	"uc.expires_at",
	"uc.is_used",
	"uc.used_at",
	"uc.booking_id",
	"uc.discount_amount",
	"uc.original_order_amount",
	"c.id",
	"c.name",
	"c.discount_type",
	"c.discount_value",
	"c.min_order_amount",
	"c.max_discount_amount",
	"c.valid_days",
	"c.usage_limit",
	"c.is_stackable",
	"c.is_first_order_only",
	"c.created_at",
}

// Repository репозиторий для работы с купонами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория купонов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetCouponByID получает шаблон купона по ID
func (r *Repository) GetCouponByID(ctx context.Context, id int64) (*domain.Coupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"discount_type",
		"discount_value",
		"min_order_amount",
		"max_discount_amount",
		"valid_days",
		"usage_limit",
		"is_stackable",
		"is_first_order_only",
		"created_at",
	).
		From("coupons").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCouponByID - build select query: %v", ErrBuildQuery, err)
	}

	var c domain.Coupon
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&c.Name,
		&c.DiscountType,
		&c.DiscountValue,
		&c.MinOrderAmount,
		&c.MaxDiscountAmount,
		&c.ValidDays,
		&c.UsageLimit,
		&c.IsStackable,
		&c.IsFirstOrderOnly,
		&c.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCouponByID - scan coupon: %v", ErrScanRow, err)
	}

	return &c, nil
}

// IssueUserCoupon создает выданный экземпляр купона для пользователя
func (r *Repository) IssueUserCoupon(ctx context.Context, uc *domain.UserCoupon) (*domain.UserCoupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("user_coupons").
		Columns(
			"coupon_id",
			"user_id",
			"code",
			"issued_at",
			"expires_at",
		).
		Values(
			uc.CouponID,
			uc.UserID,
			uc.Code,
			uc.IssuedAt,
			uc.ExpiresAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: IssueUserCoupon - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&uc.ID); err != nil {
		return nil, fmt.Errorf("%w: IssueUserCoupon - execute insert: %v", ErrExecQuery, err)
	}

	return uc, nil
}

// GetUserCouponByID получает выданный купон вместе с шаблоном
func (r *Repository) GetUserCouponByID(ctx context.Context, id int64) (*domain.UserCoupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(userCouponJoinColumns...).
		From("user_coupons uc").
		Join("coupons c ON c.id = uc.coupon_id").
		Where(squirrel.Eq{"uc.id": id})

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetUserCouponByID - build select query: %v", ErrBuildQuery, err)
	}

	uc, err := scanUserCoupon(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrUserCouponNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetUserCouponByID - scan user coupon: %v", ErrScanRow, err)
	}

	return uc, nil
}

// GetUnusedByUserID получает неиспользованные и непросроченные купоны
// пользователя (скорее истекающие - первыми)
func (r *Repository) GetUnusedByUserID(ctx context.Context, userID int64, now time.Time) ([]*domain.UserCoupon, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(userCouponJoinColumns...).
		From("user_coupons uc").
		Join("coupons c ON c.id = uc.coupon_id").
		Where(squirrel.Eq{"uc.user_id": userID, "uc.is_used": false}).
		Where(squirrel.Gt{"uc.expires_at": now}).
		OrderBy("uc.expires_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnusedByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUnusedByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	coupons := make([]*domain.UserCoupon, 0)
	for rows.Next() {
		uc, err := scanUserCoupon(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetUnusedByUserID - scan row: %v", ErrScanRow, err)
		}
		coupons = append(coupons, uc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetUnusedByUserID - rows error: %v", ErrScanRow, err)
	}

	return coupons, nil
}

// MarkUsed атомарно списывает купон: is_used, used_at, booking_id и
// зафиксированные суммы выставляются одним guarded-обновлением.
// Если купон уже использован или истек, возвращает ErrAlreadyUsed -
// купон может быть применен максимум к одному бронированию.
func (r *Repository) MarkUsed(ctx context.Context, id, bookingID, discountAmount, originalOrderAmount int64, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("user_coupons").
		Set("is_used", true).
		Set("used_at", now).
		Set("booking_id", bookingID).
		Set("discount_amount", discountAmount).
		Set("original_order_amount", originalOrderAmount).
		Where(squirrel.Eq{"id": id, "is_used": false}).
		Where(squirrel.Gt{"expires_at": now}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkUsed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkUsed - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkUsed - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAlreadyUsed
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUserCoupon(row rowScanner) (*domain.UserCoupon, error) {
	var uc domain.UserCoupon
	var c domain.Coupon

	err := row.Scan(
		&uc.ID,
		&uc.CouponID,
		&uc.UserID,
		&uc.Code,
		&uc.IssuedAt,
		&uc.ExpiresAt,
		&uc.IsUsed,
		&uc.UsedAt,
		&uc.BookingID,
		&uc.DiscountAmount,
		&uc.OriginalOrderAmount,
		&c.ID,
		&c.Name,
		&c.DiscountType,
		&c.DiscountValue,
		&c.MinOrderAmount,
		&c.MaxDiscountAmount,
		&c.ValidDays,
		&c.UsageLimit,
		&c.IsStackable,
		&c.IsFirstOrderOnly,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	uc.Coupon = &c
	return &uc, nil
}
