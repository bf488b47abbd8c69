package get_payment

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
	msgInvalidBookingID = "예약 ID가 올바르지 않습니다"
	msgMissingUserID    = "사용자 인증이 필요합니다"
	msgNotFound         = "결제 정보를 찾을 수 없습니다"
	msgForbidden        = "접근 권한이 없습니다"
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

// Handle GET /api/v1/bookings/{bookingId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /bookings/{id}/payment - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /bookings/{id}/payment - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	payment, err := h.service.GetByBookingID(r.Context(), bookingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound), errors.Is(err, payments.ErrBookingNotFound):
			h.logger.Warn("GET /bookings/{id}/payment - Payment not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("GET /bookings/{id}/payment - Access denied: booking_id=%d, user_id=%d", bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /bookings/{id}/payment - Failed to get payment: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings/{id}/payment - Payment retrieved: booking_id=%d, payment_id=%d", bookingID, payment.ID)
	handlers.RespondJSON(w, http.StatusOK, payment)
}
