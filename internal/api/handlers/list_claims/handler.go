package list_claims

import (
	"errors"
	"net/http"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
	"github.com/m04kA/KS-SharpeningService/internal/service/insurance"
	"github.com/m04kA/KS-SharpeningService/internal/service/insurance/models"
)

const (
	msgInvalidStatus = "청구 상태값이 올바르지 않습니다"
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

// Handle GET /api/v1/admin/insurance/claims?status=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListClaimsRequest{}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.ListClaims(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, insurance.ErrInvalidInput):
			h.logger.Warn("GET /admin/insurance/claims - Invalid status filter: %q", r.URL.Query().Get("status"))
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /admin/insurance/claims - Failed to list claims: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/insurance/claims - Claims retrieved: count=%d", len(result.Claims))
	handlers.RespondJSON(w, http.StatusOK, result)
}
