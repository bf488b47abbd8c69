package issue_coupon

import (
	"context"

	"github.com/m04kA/KS-SharpeningService/internal/service/coupons/models"
)

type CouponService interface {
	Issue(ctx context.Context, req *models.IssueCouponRequest) (*models.UserCouponResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
