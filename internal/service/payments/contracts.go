package payments

import (
	"context"
	"time"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
	List(ctx context.Context, filter domain.PaymentsFilter) ([]*domain.Payment, error)
	FailPending(ctx context.Context, id int64, status domain.PaymentStatus, note string) error
	MarkDepositReported(ctx context.Context, id int64, depositorName string, bankName, accountNumber *string) error
}

// BookingRepository интерфейс репозитория бронирований (проверка владельца)
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
}

// BankAccountRepository интерфейс репозитория счетов платформы
type BankAccountRepository interface {
	GetDefault(ctx context.Context) (*domain.BankAccount, error)
}

// Notifier публикует платежные события в канал уведомлений
type Notifier interface {
	PaymentFailed(paymentID, bookingID int64, status domain.PaymentStatus, note string)
	DepositReported(paymentID, bookingID int64, depositorName string)
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
