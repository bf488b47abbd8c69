package list_claims

import (
	"context"

	"github.com/m04kA/KS-SharpeningService/internal/service/insurance/models"
)

type InsuranceService interface {
	ListClaims(ctx context.Context, req *models.ListClaimsRequest) (*models.ClaimListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
