package insurance

import (
	"context"
	"time"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
)

// InsuranceRepository интерфейс репозитория страхования
type InsuranceRepository interface {
	GetActiveProduct(ctx context.Context) (*domain.InsuranceProduct, error)
	CreatePolicy(ctx context.Context, policy *domain.UserInsurance) (*domain.UserInsurance, error)
	GetPolicyByID(ctx context.Context, id int64) (*domain.UserInsurance, error)
	GetPoliciesByUserID(ctx context.Context, userID int64) ([]domain.UserInsurance, error)
	CreateClaim(ctx context.Context, claim *domain.InsuranceClaim) (*domain.InsuranceClaim, error)
	GetClaimByID(ctx context.Context, id int64) (*domain.InsuranceClaim, error)
	GetClaimsByUserID(ctx context.Context, userID int64) ([]domain.InsuranceClaim, error)
	ListClaims(ctx context.Context, status *domain.ClaimStatus) ([]domain.InsuranceClaim, error)
	SumApprovedClaims(ctx context.Context, policyID int64) (int64, error)
	ReviewPendingClaim(ctx context.Context, id int64, status domain.ClaimStatus, note *string, reviewerID int64, now time.Time) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
