package users

import (
	"context"
	"time"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	GetByPhone(ctx context.Context, phone string) (*domain.User, error)
}

// CodeStore хранилище кодов подтверждения (Redis)
type CodeStore interface {
	Save(ctx context.Context, phone, code string) error
	Consume(ctx context.Context, phone string) (string, error)
}

// SMSClient клиент SMS-шлюза
type SMSClient interface {
	SendVerificationCode(ctx context.Context, phone, code string) error
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
