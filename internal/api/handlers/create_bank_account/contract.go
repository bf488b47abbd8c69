package create_bank_account

import (
	"context"

	"github.com/m04kA/KS-SharpeningService/internal/service/bankaccounts/models"
)

type BankAccountService interface {
	Create(ctx context.Context, req *models.CreateAccountRequest) (*models.AccountResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
