package verify_code

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
	msgCodeMismatch       = "인증번호가 일치하지 않거나 만료되었습니다"
	msgInvalidInput       = "입력값이 올바르지 않습니다"
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

// Handle POST /api/v1/auth/verify
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyCodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /auth/verify - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.VerifyCode(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, users.ErrInvalidPhone):
			h.logger.Warn("POST /auth/verify - Invalid phone format")
			handlers.RespondBadRequest(w, msgInvalidPhone)

		case errors.Is(err, users.ErrCodeMismatch):
			h.logger.Warn("POST /auth/verify - Code mismatch")
			handlers.RespondUnauthorized(w, msgCodeMismatch)

		case errors.Is(err, users.ErrInvalidInput):
			h.logger.Warn("POST /auth/verify - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /auth/verify - Failed to verify code: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	status := http.StatusOK
	if result.IsNew {
		status = http.StatusCreated
	}

	h.logger.Info("POST /auth/verify - Phone verified: user_id=%d, is_new=%t", result.ID, result.IsNew)
	handlers.RespondJSON(w, status, result)
}
