package admins

import (
	"context"
	"time"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
)

// AdminRepository интерфейс репозитория администраторов
type AdminRepository interface {
	Create(ctx context.Context, admin *domain.Admin) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	GetByID(ctx context.Context, id int64) (*domain.Admin, error)
	SetActive(ctx context.Context, id int64, active bool) error
	UpdateLastLogin(ctx context.Context, id int64) error
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
