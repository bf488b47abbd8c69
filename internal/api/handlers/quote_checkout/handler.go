package quote_checkout

import (
	"errors"
	"net/http"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
	"github.com/m04kA/KS-SharpeningService/internal/api/middleware"
	quoteUC "github.com/m04kA/KS-SharpeningService/internal/usecase/quote"
)

const (
	msgInvalidRequestBody  = "요청 본문이 올바르지 않습니다"
	msgMissingUserID       = "사용자 인증이 필요합니다"
	msgKnifeTypeNotFound   = "해당 칼 종류를 찾을 수 없습니다"
	msgCouponNotFound      = "쿠폰을 찾을 수 없습니다"
	msgCouponAlreadyUsed   = "이미 사용되었거나 만료된 쿠폰입니다"
	msgCouponNotApplicable = "이 주문에는 적용할 수 없는 쿠폰입니다"
	msgInsuranceUnavail    = "현재 보험 가입이 불가능합니다"
	msgInvalidInput        = "입력값이 올바르지 않습니다"
)

type Handler struct {
	useCase QuoteUseCase
	logger  Logger
}

func NewHandler(useCase QuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/checkout/quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /checkout/quote - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /checkout/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, quoteUC.ErrKnifeTypeNotFound):
			h.logger.Warn("POST /checkout/quote - Knife type not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgKnifeTypeNotFound)

		case errors.Is(err, quoteUC.ErrCouponNotFound), errors.Is(err, quoteUC.ErrCouponNotOwned):
			// Чужой купон не раскрываем, отвечаем как на отсутствующий
			h.logger.Warn("POST /checkout/quote - Coupon not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgCouponNotFound)

		case errors.Is(err, quoteUC.ErrCouponAlreadyUsed):
			h.logger.Warn("POST /checkout/quote - Coupon already used: user_id=%d", userID)
			handlers.RespondError(w, http.StatusConflict, msgCouponAlreadyUsed)

		case errors.Is(err, quoteUC.ErrCouponNotApplicable):
			h.logger.Warn("POST /checkout/quote - Coupon not applicable: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgCouponNotApplicable)

		case errors.Is(err, quoteUC.ErrInsuranceUnavailable):
			h.logger.Warn("POST /checkout/quote - Insurance unavailable: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgInsuranceUnavail)

		case errors.Is(err, quoteUC.ErrInvalidInput):
			h.logger.Warn("POST /checkout/quote - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /checkout/quote - Failed to build quote: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /checkout/quote - Quote built: user_id=%d, total=%d", userID, result.TotalAmount)
	handlers.RespondJSON(w, http.StatusOK, result)
}
