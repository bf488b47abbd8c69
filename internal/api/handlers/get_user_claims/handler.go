package get_user_claims

import (
	"net/http"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
	"github.com/m04kA/KS-SharpeningService/internal/api/middleware"
)

const (
	msgMissingUserID = "사용자 인증이 필요합니다"
)

type Handler struct {
	service InsuranceService
	logger  Logger
}

func NewHandler(service InsuranceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/users/me/claims
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/me/claims - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.GetUserClaims(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /users/me/claims - Failed to list claims: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /users/me/claims - Claims retrieved: user_id=%d, count=%d", userID, len(result.Claims))
	handlers.RespondJSON(w, http.StatusOK, result)
}
