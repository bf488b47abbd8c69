package create_checkout

import (
	"time"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	checkoutUC "github.com/m04kA/KS-SharpeningService/internal/usecase/checkout"
	"github.com/m04kA/KS-SharpeningService/pkg/types"
)

// CheckoutItemRequest одна позиция заказа
type CheckoutItemRequest struct {
	KnifeTypeID int64 `json:"knifeTypeId"`
	Quantity    int   `json:"quantity"`
	Insured     bool  `json:"insured"`
}

// CheckoutRequest HTTP request model
type CheckoutRequest struct {
	BookingDate         string                `json:"bookingDate"` // "2026-03-02"
	BookingTime         string                `json:"bookingTime"` // "14:00"
	Items               []CheckoutItemRequest `json:"items"`
	UserCouponID        *int64                `json:"userCouponId,omitempty"`
	SpecialInstructions *string               `json:"specialInstructions,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
// (с парсингом даты и времени)
func (r *CheckoutRequest) ToUseCaseRequest(userID int64) (*checkoutUC.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	bookingTime, err := types.NewTimeStringFromString(r.BookingTime)
	if err != nil {
		return nil, err
	}

	items := make([]checkoutUC.ItemRequest, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, checkoutUC.ItemRequest{
			KnifeTypeID: item.KnifeTypeID,
			Quantity:    item.Quantity,
			Insured:     item.Insured,
		})
	}

	return &checkoutUC.Request{
		UserID:              userID,
		BookingDate:         bookingDate,
		BookingTime:         bookingTime,
		Items:               items,
		UserCouponID:        r.UserCouponID,
		SpecialInstructions: r.SpecialInstructions,
	}, nil
}
