package domain

import "time"

// DiscountType тип скидки купона
type DiscountType string

const (
	DiscountTypePercentage  DiscountType = "percentage"
	DiscountTypeFixedAmount DiscountType = "fixed_amount"
)

// IsValid returns true if the discount type is known
func (t DiscountType) IsValid() bool {
	return t == DiscountTypePercentage || t == DiscountTypeFixedAmount
}

// Coupon is a coupon template; issued instances are UserCoupons
type Coupon struct {
	ID                int64
	Name              string
	DiscountType      DiscountType
	DiscountValue     int64 // percent for percentage, KRW for fixed_amount
	MinOrderAmount    int64
	MaxDiscountAmount *int64 // nil = uncapped, percentage only
	ValidDays         int
	UsageLimit        int
	IsStackable       bool
	IsFirstOrderOnly  bool
	CreatedAt         time.Time
}

// DiscountFor computes the discount for the given order amount.
// Pure function; guarantees 0 <= discount <= orderAmount.
// Returns 0 when the order amount is below the coupon's minimum -
// callers must treat that as "coupon not applicable", never as a
// silent zero discount.
func (c *Coupon) DiscountFor(orderAmount int64) int64 {
	if orderAmount <= 0 || orderAmount < c.MinOrderAmount {
		return 0
	}

	var discount int64
	switch c.DiscountType {
	case DiscountTypePercentage:
		discount = orderAmount * c.DiscountValue / 100
		if c.MaxDiscountAmount != nil && discount > *c.MaxDiscountAmount {
			discount = *c.MaxDiscountAmount
		}
	case DiscountTypeFixedAmount:
		discount = c.DiscountValue
	default:
		return 0
	}

	if discount < 0 {
		return 0
	}
	if discount > orderAmount {
		return orderAmount
	}
	return discount
}

// AppliesTo reports whether the coupon may be applied to an order
// of the given amount
func (c *Coupon) AppliesTo(orderAmount int64) bool {
	return orderAmount >= c.MinOrderAmount
}

// UserCoupon is a single-use, user-bound instance of a Coupon.
// Once used it is bound to exactly one booking.
type UserCoupon struct {
	ID        int64
	CouponID  int64
	UserID    int64
	Code      string
	IssuedAt  time.Time
	ExpiresAt time.Time
	IsUsed    bool

	// Set atomically when the coupon is consumed at checkout
	UsedAt              *time.Time
	BookingID           *int64
	DiscountAmount      *int64
	OriginalOrderAmount *int64

	Coupon *Coupon // joined template
}

// IsExpired reports whether the coupon has naturally expired
func (uc *UserCoupon) IsExpired(now time.Time) bool {
	return now.After(uc.ExpiresAt)
}

// IsUsable reports whether the coupon can still be consumed
func (uc *UserCoupon) IsUsable(now time.Time) bool {
	return !uc.IsUsed && !uc.IsExpired(now)
}
