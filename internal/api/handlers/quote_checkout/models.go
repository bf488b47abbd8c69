package quote_checkout

import (
	quoteUC "github.com/m04kA/KS-SharpeningService/internal/usecase/quote"
)

// QuoteItemRequest одна позиция расчета
type QuoteItemRequest struct {
	KnifeTypeID int64 `json:"knifeTypeId"`
	Quantity    int   `json:"quantity"`
	Insured     bool  `json:"insured"`
}

// QuoteRequest HTTP request model
type QuoteRequest struct {
	Items        []QuoteItemRequest `json:"items"`
	UserCouponID *int64             `json:"userCouponId,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuoteRequest) ToUseCaseRequest(userID int64) *quoteUC.Request {
	items := make([]quoteUC.ItemRequest, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, quoteUC.ItemRequest{
			KnifeTypeID: item.KnifeTypeID,
			Quantity:    item.Quantity,
			Insured:     item.Insured,
		})
	}

	return &quoteUC.Request{
		UserID:       userID,
		Items:        items,
		UserCouponID: r.UserCouponID,
	}
}
