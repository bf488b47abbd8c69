package bookings

import (
	"context"
	"time"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
	UpdateStatusFrom(ctx context.Context, id int64, from, to domain.BookingStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// PaymentRepository интерфейс репозитория платежей.
// Отмена бронирования гасит связанный pending платеж в той же транзакции.
type PaymentRepository interface {
	GetByBookingID(ctx context.Context, bookingID int64) (*domain.Payment, error)
	FailPending(ctx context.Context, id int64, status domain.PaymentStatus, note string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier публикует события изменения статусов в канал уведомлений
type Notifier interface {
	BookingStatusChanged(bookingID, userID int64, from, to domain.BookingStatus)
	BookingCancelled(bookingID, userID int64, reason string)
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
