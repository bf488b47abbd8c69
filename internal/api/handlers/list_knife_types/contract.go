package list_knife_types

import (
	"context"

	"github.com/m04kA/KS-SharpeningService/internal/service/catalog/models"
)

type CatalogService interface {
	List(ctx context.Context) (*models.KnifeTypeListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
