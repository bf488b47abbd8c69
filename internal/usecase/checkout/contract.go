package checkout

import (
	"context"
	"time"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
}

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	Create(ctx context.Context, payment *domain.Payment) (*domain.Payment, error)
}

// CatalogRepository интерфейс репозитория каталога видов ножей
type CatalogRepository interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.KnifeType, error)
}

// CouponRepository интерфейс репозитория купонов
type CouponRepository interface {
	GetUserCouponByID(ctx context.Context, id int64) (*domain.UserCoupon, error)
	MarkUsed(ctx context.Context, id, bookingID, discountAmount, originalOrderAmount int64, now time.Time) error
}

// InsuranceRepository интерфейс репозитория страхования
type InsuranceRepository interface {
	GetActiveProduct(ctx context.Context) (*domain.InsuranceProduct, error)
	CreatePolicy(ctx context.Context, policy *domain.UserInsurance) (*domain.UserInsurance, error)
}

// Notifier публикует событие создания бронирования
type Notifier interface {
	BookingCreated(bookingID, userID int64, totalAmount int64)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
