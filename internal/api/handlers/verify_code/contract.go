package verify_code

import (
	"context"

	"github.com/m04kA/KS-SharpeningService/internal/service/users/models"
)

type UserService interface {
	VerifyCode(ctx context.Context, req *models.VerifyCodeRequest) (*models.UserResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
