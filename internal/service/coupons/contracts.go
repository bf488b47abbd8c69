package coupons

import (
	"context"
	"time"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
)

// CouponRepository интерфейс репозитория купонов
type CouponRepository interface {
	GetCouponByID(ctx context.Context, id int64) (*domain.Coupon, error)
	IssueUserCoupon(ctx context.Context, uc *domain.UserCoupon) (*domain.UserCoupon, error)
	GetUnusedByUserID(ctx context.Context, userID int64, now time.Time) ([]*domain.UserCoupon, error)
}

// BookingRepository интерфейс репозитория бронирований
// (проверка "первый заказ" для first-order-only купонов)
type BookingRepository interface {
	CountByUserID(ctx context.Context, userID int64) (int64, error)
}

// TimeProvider источник текущего времени (для тестируемости)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
