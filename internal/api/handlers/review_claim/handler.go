package review_claim

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
	"github.com/m04kA/KS-SharpeningService/internal/api/middleware"
	"github.com/m04kA/KS-SharpeningService/internal/service/insurance"
	"github.com/m04kA/KS-SharpeningService/internal/service/insurance/models"
)

const (
	msgInvalidClaimID     = "청구 ID가 올바르지 않습니다"
	msgInvalidRequestBody = "요청 본문이 올바르지 않습니다"
	msgMissingAdminID     = "관리자 인증이 필요합니다"
	msgNotFound           = "보험금 청구를 찾을 수 없습니다"
	msgAlreadyReviewed    = "이미 심사가 완료된 청구입니다"
	msgInvalidInput       = "입력값이 올바르지 않습니다"
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

// Handle PATCH /api/v1/admin/insurance/claims/{claimId}/review
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	claimID, err := strconv.ParseInt(vars["claimId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/insurance/claims/{id}/review - Invalid claim ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidClaimID)
		return
	}

	reviewerID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /admin/insurance/claims/{id}/review - Missing admin ID")
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	var req models.ReviewClaimRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/insurance/claims/{id}/review - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.ReviewerID = reviewerID

	result, err := h.service.ReviewClaim(r.Context(), claimID, &req)
	if err != nil {
		switch {
		case errors.Is(err, insurance.ErrClaimNotFound):
			h.logger.Warn("PATCH /admin/insurance/claims/{id}/review - Claim not found: claim_id=%d", claimID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, insurance.ErrClaimReviewed):
			h.logger.Warn("PATCH /admin/insurance/claims/{id}/review - Already reviewed: claim_id=%d", claimID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyReviewed)

		case errors.Is(err, insurance.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/insurance/claims/{id}/review - Invalid input: claim_id=%d, error=%v", claimID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /admin/insurance/claims/{id}/review - Failed to review claim: claim_id=%d, error=%v", claimID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/insurance/claims/{id}/review - Claim reviewed: claim_id=%d, status=%s, reviewer_id=%d",
		claimID, result.Status, reviewerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
