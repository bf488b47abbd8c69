package get_user_claims

import (
	"context"

	"github.com/m04kA/KS-SharpeningService/internal/service/insurance/models"
)

type InsuranceService interface {
	GetUserClaims(ctx context.Context, userID int64) (*models.ClaimListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
