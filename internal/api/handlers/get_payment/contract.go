package get_payment

import (
	"context"

	"github.com/m04kA/KS-SharpeningService/internal/service/payments/models"
)

type PaymentService interface {
	GetByBookingID(ctx context.Context, bookingID, userID int64) (*models.PaymentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
