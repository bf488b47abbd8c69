package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/KS-SharpeningService/pkg/ptr"
)

func TestCoupon_DiscountFor_FixedAmount(t *testing.T) {
	coupon := &Coupon{
		DiscountType:   DiscountTypeFixedAmount,
		DiscountValue:  2000,
		MinOrderAmount: 10000,
	}

	assert.Equal(t, int64(2000), coupon.DiscountFor(15000))

	// Ниже минимальной суммы заказа - купон неприменим
	assert.Equal(t, int64(0), coupon.DiscountFor(8000))

	// Фиксированная скидка не может превышать сумму заказа
	small := &Coupon{DiscountType: DiscountTypeFixedAmount, DiscountValue: 5000, MinOrderAmount: 1000}
	assert.Equal(t, int64(3000), small.DiscountFor(3000))
}

func TestCoupon_DiscountFor_PercentageWithCap(t *testing.T) {
	coupon := &Coupon{
		DiscountType:      DiscountTypePercentage,
		DiscountValue:     10,
		MinOrderAmount:    15000,
		MaxDiscountAmount: ptr.Ptr(int64(5000)),
	}

	// raw = 6000, ограничено cap'ом 5000
	assert.Equal(t, int64(5000), coupon.DiscountFor(60000))

	// raw = 2000, cap не срабатывает
	assert.Equal(t, int64(2000), coupon.DiscountFor(20000))
}

func TestCoupon_DiscountFor_PercentageUncapped(t *testing.T) {
	coupon := &Coupon{
		DiscountType:  DiscountTypePercentage,
		DiscountValue: 25,
	}

	assert.Equal(t, int64(10000), coupon.DiscountFor(40000))
}

func TestCoupon_DiscountFor_Bounds(t *testing.T) {
	coupons := []*Coupon{
		{DiscountType: DiscountTypePercentage, DiscountValue: 10, MinOrderAmount: 15000, MaxDiscountAmount: ptr.Ptr(int64(5000))},
		{DiscountType: DiscountTypePercentage, DiscountValue: 100},
		{DiscountType: DiscountTypeFixedAmount, DiscountValue: 2000, MinOrderAmount: 10000},
		{DiscountType: DiscountTypeFixedAmount, DiscountValue: 999999},
	}
	amounts := []int64{0, 1, 8000, 10000, 15000, 26500, 60000, 1000000}

	// 0 <= discount <= orderAmount для любых купонов и сумм
	for _, c := range coupons {
		for _, amount := range amounts {
			d := c.DiscountFor(amount)
			assert.GreaterOrEqual(t, d, int64(0))
			assert.LessOrEqual(t, d, amount)
			if c.MaxDiscountAmount != nil {
				assert.LessOrEqual(t, d, *c.MaxDiscountAmount)
			}
		}
	}
}

func TestTotalInsurance(t *testing.T) {
	items := []PricingItem{
		{Quantity: 3, Insured: true},
		{Quantity: 2, Insured: false},
	}

	assert.Equal(t, int64(4500), TotalInsurance(items, 1500))

	// Незастрахованные позиции не дают вклада
	assert.Equal(t, int64(0), TotalInsurance([]PricingItem{{Quantity: 5, Insured: false}}, 1500))
	assert.Equal(t, int64(0), TotalInsurance(nil, 1500))
}

func TestComposeTotals_NoCoupon(t *testing.T) {
	// Два вида ножей: 4000 x 3 (застрахован), 5000 x 2
	items := []PricingItem{
		{KnifeTypeID: 1, Quantity: 3, UnitPrice: 4000, Insured: true},
		{KnifeTypeID: 2, Quantity: 2, UnitPrice: 5000, Insured: false},
	}

	totals := ComposeTotals(items, 1500, nil)

	assert.Equal(t, int64(22000), totals.ServiceAmount)
	assert.Equal(t, int64(4500), totals.InsuranceAmount)
	assert.Equal(t, int64(0), totals.DiscountAmount)
	assert.Equal(t, int64(26500), totals.TotalAmount)
}

func TestComposeTotals_WithCoupon(t *testing.T) {
	items := []PricingItem{
		{KnifeTypeID: 1, Quantity: 3, UnitPrice: 5000},
	}
	coupon := &Coupon{
		DiscountType:   DiscountTypeFixedAmount,
		DiscountValue:  2000,
		MinOrderAmount: 10000,
	}

	totals := ComposeTotals(items, 1500, coupon)

	assert.Equal(t, int64(15000), totals.ServiceAmount)
	assert.Equal(t, int64(2000), totals.DiscountAmount)
	assert.Equal(t, int64(13000), totals.TotalAmount)
}

func TestComposeTotals_FlooredAtZero(t *testing.T) {
	items := []PricingItem{{Quantity: 1, UnitPrice: 1000}}
	coupon := &Coupon{DiscountType: DiscountTypeFixedAmount, DiscountValue: 5000}

	totals := ComposeTotals(items, 0, coupon)

	// Скидка ограничена суммой заказа, итог не уходит в минус
	assert.Equal(t, int64(1000), totals.DiscountAmount)
	assert.Equal(t, int64(0), totals.TotalAmount)
}

func TestComposeTotals_Idempotent(t *testing.T) {
	items := []PricingItem{
		{KnifeTypeID: 1, Quantity: 3, UnitPrice: 4000, Insured: true},
		{KnifeTypeID: 2, Quantity: 2, UnitPrice: 5000},
	}
	coupon := &Coupon{
		DiscountType:      DiscountTypePercentage,
		DiscountValue:     10,
		MinOrderAmount:    15000,
		MaxDiscountAmount: ptr.Ptr(int64(5000)),
	}

	first := ComposeTotals(items, 1500, coupon)
	second := ComposeTotals(items, 1500, coupon)

	assert.Equal(t, first, second)
}
