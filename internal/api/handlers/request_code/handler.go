package request_code

import (
	"errors"
	"net/http"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
	"github.com/m04kA/KS-SharpeningService/internal/service/users"
	"github.com/m04kA/KS-SharpeningService/internal/service/users/models"
)

const (
	msgInvalidRequestBody = "요청 본문이 올바르지 않습니다"
	msgInvalidPhone       = "휴대폰 번호 형식이 올바르지 않습니다"
	msgResendTooSoon      = "잠시 후 다시 인증번호를 요청해 주세요"
)

type Handler struct {
	service UserService
	logger  Logger
}

func NewHandler(service UserService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/auth/verification-code
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.RequestCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/verification-code - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.RequestCode(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidPhone):
			h.logger.Warn("POST /auth/verification-code - Invalid phone format")
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, users.ErrResendTooSoon):
			h.logger.Warn("POST /auth/verification-code - Resend requested too soon")
			handlers.RespondError(w, http.StatusTooManyRequests, msgResendTooSoon)

		default:
			h.logger.Error("POST /auth/verification-code - Failed to send code: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /auth/verification-code - Verification code sent")
	handlers.RespondJSON(w, http.StatusOK, result)
}
