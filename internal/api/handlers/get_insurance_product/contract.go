package get_insurance_product

import (
	"context"

	"github.com/m04kA/KS-SharpeningService/internal/service/insurance/models"
)

type InsuranceService interface {
	GetProduct(ctx context.Context) (*models.ProductResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
