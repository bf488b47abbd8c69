package confirm_payment

import (
	"context"
	"time"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	paymentRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/payment"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	ConfirmPending(ctx context.Context, id int64, params paymentRepo.ConfirmParams) error
}

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatusFrom(ctx context.Context, id int64, from, to domain.BookingStatus) error
}

// Notifier публикует события подтверждения
type Notifier interface {
	PaymentConfirmed(paymentID, bookingID int64, confirmedAmount int64, mismatch bool)
	BookingStatusChanged(bookingID, userID int64, from, to domain.BookingStatus)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
