package request_code

import (
	"context"

	"github.com/m04kA/KS-SharpeningService/internal/service/users/models"
)

type UserService interface {
	RequestCode(ctx context.Context, req *models.RequestCodeRequest) (*models.RequestCodeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
