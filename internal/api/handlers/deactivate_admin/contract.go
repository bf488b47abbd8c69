package deactivate_admin

import (
	"context"

	"github.com/m04kA/KS-SharpeningService/internal/service/admins/models"
)

type AdminService interface {
	Deactivate(ctx context.Context, id int64, req *models.DeactivateAdminRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
