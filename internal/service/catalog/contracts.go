package catalog

import (
	"context"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
)

type CatalogRepository interface {
	List(ctx context.Context) ([]*domain.KnifeType, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
