package deactivate_admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
	"github.com/m04kA/KS-SharpeningService/internal/api/middleware"
	"github.com/m04kA/KS-SharpeningService/internal/service/admins"
	"github.com/m04kA/KS-SharpeningService/internal/service/admins/models"
)

const (
	msgInvalidAdminID = "관리자 ID가 올바르지 않습니다"
	msgMissingAdminID = "관리자 인증이 필요합니다"
	msgNotFound       = "관리자 계정을 찾을 수 없습니다"
	msgForbidden      = "관리자 계정을 관리할 권한이 없습니다"
	msgSelfDeactivate = "본인 계정은 비활성화할 수 없습니다"
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

// Handle PATCH /api/v1/admin/admins/{adminId}/deactivate
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	adminID, err := strconv.ParseInt(vars["adminId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/admins/{id}/deactivate - Invalid admin ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAdminID)
		return
	}

	actorID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /admin/admins/{id}/deactivate - Missing admin ID")
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	// Самодеактивация запрещена на уровне сервиса, но даем понятный ответ сразу
	if adminID == actorID {
		h.logger.Warn("PATCH /admin/admins/{id}/deactivate - Self-deactivation attempt: admin_id=%d", adminID)
		handlers.RespondError(w, http.StatusConflict, msgSelfDeactivate)
		return
	}

	err = h.service.Deactivate(r.Context(), adminID, &models.DeactivateAdminRequest{ActorID: actorID})
	if err != nil {
		switch {
		case errors.Is(err, admins.ErrAdminNotFound):
			h.logger.Warn("PATCH /admin/admins/{id}/deactivate - Admin not found: admin_id=%d", adminID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, admins.ErrAccessDenied):
			h.logger.Warn("PATCH /admin/admins/{id}/deactivate - Access denied: actor_id=%d", actorID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PATCH /admin/admins/{id}/deactivate - Failed to deactivate admin: admin_id=%d, error=%v", adminID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/admins/{id}/deactivate - Admin deactivated: admin_id=%d, actor_id=%d", adminID, actorID)
	w.WriteHeader(http.StatusNoContent)
}
