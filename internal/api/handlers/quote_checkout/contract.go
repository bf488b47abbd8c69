package quote_checkout

import (
	"context"

	quoteUC "github.com/m04kA/KS-SharpeningService/internal/usecase/quote"
)

type QuoteUseCase interface {
	Execute(ctx context.Context, req *quoteUC.Request) (*quoteUC.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
