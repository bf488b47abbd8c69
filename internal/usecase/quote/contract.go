package quote

import (
	"context"
	"time"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога видов ножей
type CatalogRepository interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.KnifeType, error)
}

// CouponRepository интерфейс репозитория купонов
type CouponRepository interface {
	GetUserCouponByID(ctx context.Context, id int64) (*domain.UserCoupon, error)
}

// InsuranceRepository интерфейс репозитория страхования
type InsuranceRepository interface {
	GetActiveProduct(ctx context.Context) (*domain.InsuranceProduct, error)
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
