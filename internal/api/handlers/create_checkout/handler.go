package create_checkout

import (
	"errors"
	"net/http"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
	"github.com/m04kA/KS-SharpeningService/internal/api/middleware"
	checkoutUC "github.com/m04kA/KS-SharpeningService/internal/usecase/checkout"
)

const (
	msgInvalidRequestBody  = "요청 본문이 올바르지 않습니다"
	msgInvalidDateTime     = "예약 날짜 또는 시간 형식이 올바르지 않습니다 (YYYY-MM-DD, HH:MM)"
	msgMissingUserID       = "사용자 인증이 필요합니다"
	msgKnifeTypeNotFound   = "해당 칼 종류를 찾을 수 없습니다"
	msgCouponNotFound      = "쿠폰을 찾을 수 없습니다"
	msgCouponAlreadyUsed   = "이미 사용되었거나 만료된 쿠폰입니다"
	msgCouponNotApplicable = "이 주문에는 적용할 수 없는 쿠폰입니다"
	msgInsuranceUnavail    = "현재 보험 가입이 불가능합니다"
	msgInvalidDate         = "예약 날짜가 올바르지 않습니다"
	msgInvalidInput        = "입력값이 올바르지 않습니다"
)

type Handler struct {
	useCase CheckoutUseCase
	logger  Logger
}

func NewHandler(useCase CheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /checkout - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /checkout - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /checkout - Failed to parse date/time: user_id=%d, error=%v", userID, err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkoutUC.ErrKnifeTypeNotFound):
			h.logger.Warn("POST /checkout - Knife type not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgKnifeTypeNotFound)

		case errors.Is(err, checkoutUC.ErrCouponNotFound), errors.Is(err, checkoutUC.ErrCouponNotOwned):
			// Чужой купон не раскрываем, отвечаем как на отсутствующий
			h.logger.Warn("POST /checkout - Coupon not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgCouponNotFound)

		case errors.Is(err, checkoutUC.ErrCouponAlreadyUsed):
			h.logger.Warn("POST /checkout - Coupon already used: user_id=%d", userID)
			handlers.RespondError(w, http.StatusConflict, msgCouponAlreadyUsed)

		case errors.Is(err, checkoutUC.ErrCouponNotApplicable):
			h.logger.Warn("POST /checkout - Coupon not applicable: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgCouponNotApplicable)

		case errors.Is(err, checkoutUC.ErrInsuranceUnavailable):
			h.logger.Warn("POST /checkout - Insurance unavailable: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInsuranceUnavail)

		case errors.Is(err, checkoutUC.ErrInvalidDate):
			h.logger.Warn("POST /checkout - Invalid booking date: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, checkoutUC.ErrInvalidInput):
			h.logger.Warn("POST /checkout - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /checkout - Failed to create order: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /checkout - Order created: booking_id=%d, payment_id=%d, user_id=%d, total=%d",
		result.BookingID, result.PaymentID, userID, result.TotalAmount)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
