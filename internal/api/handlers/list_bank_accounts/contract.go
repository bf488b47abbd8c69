package list_bank_accounts

import (
	"context"

	"github.com/m04kA/KS-SharpeningService/internal/service/bankaccounts/models"
)

type BankAccountService interface {
	List(ctx context.Context) (*models.AccountListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
