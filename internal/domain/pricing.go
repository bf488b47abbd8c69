package domain

// PricingItem is one checkout line as priced by the total composer
type PricingItem struct {
	KnifeTypeID   int64
	KnifeTypeName string
	Quantity      int
	UnitPrice     int64
	Insured       bool
}

// LineTotal returns the service cost of the line (insurance excluded)
func (i PricingItem) LineTotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// OrderTotals is the aggregated monetary result of pricing a checkout.
// All values are non-negative integer KRW.
type OrderTotals struct {
	ServiceAmount   int64
	InsuranceAmount int64
	DiscountAmount  int64
	TotalAmount     int64
}

// TotalInsurance aggregates the insurance premium over insured lines.
// premiumPerUnit is the platform-wide premium of the active insurance
// product; uninsured lines contribute nothing. Pure function.
func TotalInsurance(items []PricingItem, premiumPerUnit int64) int64 {
	var total int64
	for _, item := range items {
		if !item.Insured || item.Quantity <= 0 {
			continue
		}
		total += premiumPerUnit * int64(item.Quantity)
	}
	return total
}

// ComposeTotals computes the final payable amount of a checkout:
// service subtotal plus insurance, minus the coupon discount, floored
// at zero. The discount is computed on the pre-discount total
// (service + insurance). Idempotent: identical inputs always produce
// identical outputs; this is the single source of both the UI display
// and the amount persisted to the payment record.
func ComposeTotals(items []PricingItem, premiumPerUnit int64, coupon *Coupon) OrderTotals {
	var serviceAmount int64
	for _, item := range items {
		serviceAmount += item.LineTotal()
	}

	insuranceAmount := TotalInsurance(items, premiumPerUnit)
	preDiscountTotal := serviceAmount + insuranceAmount

	var discountAmount int64
	if coupon != nil {
		discountAmount = coupon.DiscountFor(preDiscountTotal)
	}

	totalAmount := preDiscountTotal - discountAmount
	if totalAmount < 0 {
		totalAmount = 0
	}

	return OrderTotals{
		ServiceAmount:   serviceAmount,
		InsuranceAmount: insuranceAmount,
		DiscountAmount:  discountAmount,
		TotalAmount:     totalAmount,
	}
}
