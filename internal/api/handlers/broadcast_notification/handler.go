package broadcast_notification

import (
	"errors"
	"net/http"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
	"github.com/m04kA/KS-SharpeningService/internal/service/notifications"
	"github.com/m04kA/KS-SharpeningService/internal/service/notifications/models"
)

const (
	msgInvalidRequestBody = "요청 본문이 올바르지 않습니다"
	msgInvalidInput       = "제목과 내용을 입력해 주세요"
)

type Handler struct {
	service NotificationService
	logger  Logger
}

func NewHandler(service NotificationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/notifications/broadcast
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.BroadcastRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/notifications/broadcast - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Broadcast(&req)
	if err != nil {
		switch {
		case errors.Is(err, notifications.ErrInvalidInput):
			h.logger.Warn("POST /admin/notifications/broadcast - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/notifications/broadcast - Failed to publish: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/notifications/broadcast - Broadcast published: title=%q", req.Title)
	handlers.RespondJSON(w, http.StatusAccepted, result)
}
