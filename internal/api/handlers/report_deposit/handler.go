package report_deposit

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
	"github.com/m04kA/KS-SharpeningService/internal/api/middleware"
	"github.com/m04kA/KS-SharpeningService/internal/service/payments"
)

const (
	msgInvalidPaymentID   = "결제 ID가 올바르지 않습니다"
	msgInvalidRequestBody = "요청 본문이 올바르지 않습니다"
	msgMissingUserID      = "사용자 인증이 필요합니다"
	msgNotFound           = "결제 정보를 찾을 수 없습니다"
	msgForbidden          = "접근 권한이 없습니다"
	msgNotPending         = "입금 대기 상태의 결제가 아닙니다"
	msgDeadlinePassed     = "입금 기한이 지났습니다"
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

// Handle PATCH /api/v1/payments/{paymentId}/deposit-report
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	paymentID, err := strconv.ParseInt(vars["paymentId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /payments/{id}/deposit-report - Invalid payment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaymentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /payments/{id}/deposit-report - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req ReportDepositRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /payments/{id}/deposit-report - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.ReportDeposit(r.Context(), paymentID, req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound), errors.Is(err, payments.ErrBookingNotFound):
			h.logger.Warn("PATCH /payments/{id}/deposit-report - Payment not found: payment_id=%d", paymentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("PATCH /payments/{id}/deposit-report - Access denied: payment_id=%d, user_id=%d", paymentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, payments.ErrNotPending):
			h.logger.Warn("PATCH /payments/{id}/deposit-report - Payment not pending: payment_id=%d", paymentID)
			handlers.RespondError(w, http.StatusConflict, msgNotPending)

		case errors.Is(err, payments.ErrDeadlinePassed):
			h.logger.Warn("PATCH /payments/{id}/deposit-report - Deadline passed: payment_id=%d", paymentID)
			handlers.RespondError(w, http.StatusConflict, msgDeadlinePassed)

		case errors.Is(err, payments.ErrInvalidInput):
			h.logger.Warn("PATCH /payments/{id}/deposit-report - Invalid input: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /payments/{id}/deposit-report - Failed to report deposit: payment_id=%d, error=%v", paymentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /payments/{id}/deposit-report - Deposit reported: payment_id=%d, user_id=%d", paymentID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
