package fail_payment

import (
	"context"

	"github.com/m04kA/KS-SharpeningService/internal/service/payments/models"
)

type PaymentService interface {
	Fail(ctx context.Context, paymentID int64, req *models.FailPaymentRequest) (*models.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
