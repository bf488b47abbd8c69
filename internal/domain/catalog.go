package domain

import "time"

// KnifeType catalog entry: reference data maintained by administrators,
// read by the booking flow. Prices are integer KRW.
type KnifeType struct {
	ID            int64
	Name          string
	MarketPrice   int64
	DiscountPrice int64 // 0 = no discounted price
	Description   string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Price returns the effective per-unit price used at checkout
func (k *KnifeType) Price() int64 {
	if k.DiscountPrice > 0 {
		return k.DiscountPrice
	}
	return k.MarketPrice
}
