package fail_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
	"github.com/m04kA/KS-SharpeningService/internal/service/payments"
	"github.com/m04kA/KS-SharpeningService/internal/service/payments/models"
)

const (
	msgInvalidPaymentID   = "결제 ID가 올바르지 않습니다"
	msgInvalidRequestBody = "요청 본문이 올바르지 않습니다"
	msgNotFound           = "결제 정보를 찾을 수 없습니다"
	msgNotPending         = "이미 처리된 결제입니다"
	msgInvalidStatus      = "결제 상태값이 올바르지 않습니다"
	msgInvalidInput       = "입력값이 올바르지 않습니다"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/admin/payments/{paymentId}/fail
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	paymentID, err := strconv.ParseInt(vars["paymentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/payments/{id}/fail - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	var req models.FailPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /admin/payments/{id}/fail - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Fail(r.Context(), paymentID, &req)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			h.logger.Warn("PATCH /admin/payments/{id}/fail - Payment not found: payment_id=%d", paymentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrNotPending):
			h.logger.Warn("PATCH /admin/payments/{id}/fail - Payment not pending: payment_id=%d", paymentID)
			handlers.RespondError(w, http.StatusConflict, msgNotPending)

		case errors.Is(err, payments.ErrInvalidStatus):
			h.logger.Warn("PATCH /admin/payments/{id}/fail - Invalid target status: payment_id=%d, status=%q", paymentID, req.Status)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("PATCH /admin/payments/{id}/fail - Invalid input: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /admin/payments/{id}/fail - Failed to fail payment: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/payments/{id}/fail - Payment marked %s: payment_id=%d", result.Status, paymentID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
