package get_user_coupons

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
	"github.com/m04kA/KS-SharpeningService/internal/api/middleware"
	"github.com/m04kA/KS-SharpeningService/internal/service/coupons"
	"github.com/m04kA/KS-SharpeningService/internal/service/coupons/models"
)

const (
	msgMissingUserID = "사용자 인증이 필요합니다"
	msgInvalidAmount = "주문 금액이 올바르지 않습니다"
	msgInvalidInput  = "입력값이 올바르지 않습니다"
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

// Handle GET /api/v1/users/me/coupons?orderAmount=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /users/me/coupons - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetUserCouponsRequest{UserID: userID}
	if raw := r.URL.Query().Get("orderAmount"); raw != "" {
		amount, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || amount < 0 {
			h.logger.Warn("GET /users/me/coupons - Invalid order amount: user_id=%d, value=%q", userID, raw)
			handlers.RespondBadRequest(w, msgInvalidAmount)
			return
		}
		req.OrderAmount = &amount
	}

	result, err := h.service.GetUserCoupons(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, coupons.ErrInvalidInput):
			h.logger.Warn("GET /users/me/coupons - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /users/me/coupons - Failed to list coupons: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /users/me/coupons - Coupons retrieved: user_id=%d, count=%d", userID, len(result.Coupons))
	handlers.RespondJSON(w, http.StatusOK, result)
}
