package get_user_policies

import (
	"context"

	"github.com/m04kA/KS-SharpeningService/internal/service/insurance/models"
)

type InsuranceService interface {
	GetUserPolicies(ctx context.Context, userID int64) (*models.PolicyListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
