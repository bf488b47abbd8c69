package get_user_coupons

import (
	"context"

	"github.com/m04kA/KS-SharpeningService/internal/service/coupons/models"
)

type CouponService interface {
	GetUserCoupons(ctx context.Context, req *models.GetUserCouponsRequest) (*models.UserCouponListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
