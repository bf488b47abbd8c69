package models

import (
	"time"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
)

// Request модели

// IssueCouponRequest запрос админа на выдачу купона пользователю
type IssueCouponRequest struct {
	CouponID int64 `json:"couponId"`
	UserID   int64 `json:"userId"`
}

// GetUserCouponsRequest запрос купонов пользователя.
// OrderAmount, если задан, включает фильтрацию по применимости
// к заказу на эту сумму.
type GetUserCouponsRequest struct {
	UserID      int64  `json:"userId"`
	OrderAmount *int64 `json:"orderAmount,omitempty"`
}

// Response модели

// UserCouponResponse ответ с данными выданного купона
type UserCouponResponse struct {
	ID                int64     `json:"id"`
	CouponID          int64     `json:"couponId"`
	Code              string    `json:"code"`
	Name              string    `json:"name"`
	DiscountType      string    `json:"discountType"`
	DiscountValue     int64     `json:"discountValue"`
	MinOrderAmount    int64     `json:"minOrderAmount"`
	MaxDiscountAmount *int64    `json:"maxDiscountAmount,omitempty"`
	IssuedAt          time.Time `json:"issuedAt"`
	ExpiresAt         time.Time `json:"expiresAt"`

	// Заполняется только при запросе с orderAmount
	EstimatedDiscount *int64 `json:"estimatedDiscount,omitempty"`
}

// UserCouponListResponse ответ со списком купонов
type UserCouponListResponse struct {
	Coupons []UserCouponResponse `json:"coupons"`
}

// Методы конвертации

// FromDomainUserCoupon конвертирует domain модель в DTO
func FromDomainUserCoupon(uc *domain.UserCoupon) *UserCouponResponse {
	if uc == nil || uc.Coupon == nil {
		return nil
	}

	return &UserCouponResponse{
		ID:                uc.ID,
		CouponID:          uc.CouponID,
		Code:              uc.Code,
		Name:              uc.Coupon.Name,
		DiscountType:      string(uc.Coupon.DiscountType),
		DiscountValue:     uc.Coupon.DiscountValue,
		MinOrderAmount:    uc.Coupon.MinOrderAmount,
		MaxDiscountAmount: uc.Coupon.MaxDiscountAmount,
		IssuedAt:          uc.IssuedAt,
		ExpiresAt:         uc.ExpiresAt,
	}
}
