package broadcast_notification

import (
	"github.com/m04kA/KS-SharpeningService/internal/service/notifications/models"
)

type NotificationService interface {
	Broadcast(req *models.BroadcastRequest) (*models.BroadcastResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
