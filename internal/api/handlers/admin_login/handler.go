package admin_login

import (
	"errors"
	"net/http"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
	"github.com/m04kA/KS-SharpeningService/internal/service/admins"
	"github.com/m04kA/KS-SharpeningService/internal/service/admins/models"
)

const (
	msgInvalidRequestBody = "요청 본문이 올바르지 않습니다"
	msgInvalidCredentials = "이메일 또는 비밀번호가 올바르지 않습니다"
	msgAccountDisabled    = "비활성화된 계정입니다"
)

type Handler struct {
	service AdminService
	logger  Logger
}

func NewHandler(service AdminService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/auth/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/auth/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Login(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, admins.ErrInvalidCredentials):
			h.logger.Warn("POST /admin/auth/login - Invalid credentials: email=%s", req.Email)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)

		case errors.Is(err, admins.ErrAccountDisabled):
			h.logger.Warn("POST /admin/auth/login - Account disabled: email=%s", req.Email)
			handlers.RespondForbidden(w, msgAccountDisabled)

		default:
			h.logger.Error("POST /admin/auth/login - Failed to login: email=%s, error=%v", req.Email, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/auth/login - Admin logged in: admin_id=%d", result.Admin.ID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
