package create_admin

import (
	"errors"
	"net/http"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
	"github.com/m04kA/KS-SharpeningService/internal/api/middleware"
	"github.com/m04kA/KS-SharpeningService/internal/service/admins"
	"github.com/m04kA/KS-SharpeningService/internal/service/admins/models"
)

const (
	msgInvalidRequestBody = "요청 본문이 올바르지 않습니다"
	msgMissingAdminID     = "관리자 인증이 필요합니다"
	msgForbidden          = "관리자 계정을 관리할 권한이 없습니다"
	msgDuplicateEmail     = "이미 등록된 이메일입니다"
	msgInvalidInput       = "입력값이 올바르지 않습니다"
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

// Handle POST /api/v1/admin/admins
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		h.logger.Warn("POST /admin/admins - Missing admin ID")
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	var req models.CreateAdminRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/admins - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ActorID = actorID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, admins.ErrAccessDenied):
			h.logger.Warn("POST /admin/admins - Access denied: actor_id=%d", actorID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, admins.ErrDuplicateEmail):
			h.logger.Warn("POST /admin/admins - Duplicate email: email=%s", req.Email)
			handlers.RespondError(w, http.StatusConflict, msgDuplicateEmail)

		case errors.Is(err, admins.ErrInvalidInput):
			h.logger.Warn("POST /admin/admins - Invalid input: actor_id=%d, error=%v", actorID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/admins - Failed to create admin: actor_id=%d, error=%v", actorID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/admins - Admin created: admin_id=%d, actor_id=%d", result.ID, actorID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
