package confirm_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
	"github.com/m04kA/KS-SharpeningService/internal/api/middleware"
	confirmPayment "github.com/m04kA/KS-SharpeningService/internal/usecase/confirm_payment"
)

const (
	msgInvalidPaymentID   = "결제 ID가 올바르지 않습니다"
	msgInvalidRequestBody = "요청 본문이 올바르지 않습니다"
	msgInvalidDepositDate = "입금 날짜 형식이 올바르지 않습니다 (YYYY-MM-DD)"
	msgMissingAdminID     = "관리자 인증이 필요합니다"
	msgNotFound           = "결제 정보를 찾을 수 없습니다"
	msgNotPending         = "이미 처리된 결제입니다"
	msgInvalidInput       = "입력값이 올바르지 않습니다"
)

type Handler struct {
	useCase ConfirmPaymentUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/payments/{paymentId}/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	paymentID, err := strconv.ParseInt(vars["paymentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/payments/{id}/confirm - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	adminID, ok := middleware.GetAdminID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /admin/payments/{id}/confirm - Missing admin ID")
		handlers.RespondUnauthorized(w, msgMissingAdminID)
		return
	}

	var req ConfirmPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/payments/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(paymentID, adminID)
	if err != nil {
		h.logger.Warn("PATCH /admin/payments/{id}/confirm - Invalid deposit date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDepositDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, confirmPayment.ErrPaymentNotFound):
			h.logger.Warn("PATCH /admin/payments/{id}/confirm - Payment not found: payment_id=%d", paymentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, confirmPayment.ErrNotPending):
			h.logger.Warn("PATCH /admin/payments/{id}/confirm - Payment not pending: payment_id=%d, admin_id=%d", paymentID, adminID)
			handlers.RespondError(w, http.StatusConflict, msgNotPending)

		case errors.Is(err, confirmPayment.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/payments/{id}/confirm - Invalid input: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /admin/payments/{id}/confirm - Failed to confirm payment: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/payments/{id}/confirm - Payment confirmed: payment_id=%d, admin_id=%d, mismatch=%t",
		paymentID, adminID, result.AmountMismatch)
	handlers.RespondJSON(w, http.StatusOK, result)
}
