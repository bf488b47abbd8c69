package issue_coupon

import (
	"errors"
	"net/http"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
	"github.com/m04kA/KS-SharpeningService/internal/service/coupons"
	"github.com/m04kA/KS-SharpeningService/internal/service/coupons/models"
)

const (
	msgInvalidRequestBody = "요청 본문이 올바르지 않습니다"
	msgCouponNotFound     = "쿠폰을 찾을 수 없습니다"
	msgInvalidInput       = "입력값이 올바르지 않습니다"
)

type Handler struct {
	service CouponService
	logger  Logger
}

func NewHandler(service CouponService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/coupons/issue
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.IssueCouponRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/coupons/issue - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Issue(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, coupons.ErrCouponNotFound):
			h.logger.Warn("POST /admin/coupons/issue - Coupon not found: coupon_id=%d", req.CouponID)
			handlers.RespondNotFound(w, msgCouponNotFound)

		case errors.Is(err, coupons.ErrInvalidInput):
			h.logger.Warn("POST /admin/coupons/issue - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/coupons/issue - Failed to issue coupon: coupon_id=%d, user_id=%d, error=%v",
				req.CouponID, req.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/coupons/issue - Coupon issued: user_coupon_id=%d, coupon_id=%d, user_id=%d",
		result.ID, req.CouponID, req.UserID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
