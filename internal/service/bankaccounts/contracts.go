package bankaccounts

import (
	"context"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
)

// BankAccountRepository интерфейс репозитория счетов платформы
type BankAccountRepository interface {
	Create(ctx context.Context, account *domain.BankAccount) (*domain.BankAccount, error)
	List(ctx context.Context) ([]*domain.BankAccount, error)
	GetDefault(ctx context.Context) (*domain.BankAccount, error)
	UnsetDefaultAll(ctx context.Context) error
	SetDefault(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
