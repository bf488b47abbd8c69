package create_claim

import (
	"context"

	"github.com/m04kA/KS-SharpeningService/internal/service/insurance/models"
)

type InsuranceService interface {
	CreateClaim(ctx context.Context, req *models.CreateClaimRequest) (*models.ClaimResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
