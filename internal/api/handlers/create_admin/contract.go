package create_admin

import (
	"context"

	"github.com/m04kA/KS-SharpeningService/internal/service/admins/models"
)

type AdminService interface {
	Create(ctx context.Context, req *models.CreateAdminRequest) (*models.AdminResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
