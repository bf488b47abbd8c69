package create_claim

import (
	"errors"
	"net/http"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
	"github.com/m04kA/KS-SharpeningService/internal/api/middleware"
	"github.com/m04kA/KS-SharpeningService/internal/service/insurance"
	"github.com/m04kA/KS-SharpeningService/internal/service/insurance/models"
)

const (
	msgInvalidRequestBody = "요청 본문이 올바르지 않습니다"
	msgMissingUserID      = "사용자 인증이 필요합니다"
	msgPolicyNotFound     = "보험 가입 내역을 찾을 수 없습니다"
	msgForbidden          = "접근 권한이 없습니다"
	msgPolicyInactive     = "유효하지 않은 보험입니다"
	msgCoverageExceeded   = "청구 금액이 남은 보장 한도를 초과합니다"
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

// Handle POST /api/v1/insurance/claims
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /insurance/claims - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateClaimRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /insurance/claims - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.CreateClaim(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, insurance.ErrPolicyNotFound):
			h.logger.Warn("POST /insurance/claims - Policy not found: policy_id=%d, user_id=%d", req.PolicyID, userID)
			handlers.RespondNotFound(w, msgPolicyNotFound)

		case errors.Is(err, insurance.ErrAccessDenied):
			h.logger.Warn("POST /insurance/claims - Access denied: policy_id=%d, user_id=%d", req.PolicyID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, insurance.ErrPolicyInactive):
			h.logger.Warn("POST /insurance/claims - Policy inactive: policy_id=%d, user_id=%d", req.PolicyID, userID)
			handlers.RespondError(w, http.StatusConflict, msgPolicyInactive)

		case errors.Is(err, insurance.ErrCoverageExceeded):
			h.logger.Warn("POST /insurance/claims - Coverage exceeded: policy_id=%d, amount=%d", req.PolicyID, req.ClaimAmount)
			handlers.RespondError(w, http.StatusConflict, msgCoverageExceeded)

		case errors.Is(err, insurance.ErrInvalidInput):
			h.logger.Warn("POST /insurance/claims - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /insurance/claims - Failed to create claim: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /insurance/claims - Claim created: claim_id=%d, policy_id=%d, user_id=%d",
		result.ID, req.PolicyID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
