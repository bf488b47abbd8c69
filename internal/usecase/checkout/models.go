package checkout

import (
	"time"

	"github.com/m04kA/KS-SharpeningService/pkg/types"
)

// ItemRequest одна позиция оформляемого заказа
type ItemRequest struct {
	KnifeTypeID int64
	Quantity    int
	Insured     bool
}

// Request входные данные оформления заказа
type Request struct {
	UserID              int64
	BookingDate         time.Time
	BookingTime         types.TimeString
	Items               []ItemRequest
	UserCouponID        *int64
	SpecialInstructions *string
}

// ItemResponse позиция созданного заказа
type ItemResponse struct {
	KnifeTypeID   int64  `json:"knifeTypeId"`
	KnifeTypeName string `json:"knifeTypeName"`
	Quantity      int    `json:"quantity"`
	UnitPrice     int64  `json:"unitPrice"`
	TotalPrice    int64  `json:"totalPrice"`
	Insured       bool   `json:"insured"`
}

// Response результат оформления заказа
type Response struct {
	BookingID   int64  `json:"bookingId"`
	Status      string `json:"status"`
	StatusLabel string `json:"statusLabel"`
	BookingDate string `json:"bookingDate"`
	BookingTime string `json:"bookingTime"`

	Items []ItemResponse `json:"items"`

	ServiceAmount   int64 `json:"serviceAmount"`
	InsuranceAmount int64 `json:"insuranceAmount"`
	DiscountAmount  int64 `json:"discountAmount"`
	TotalAmount     int64 `json:"totalAmount"`

	PaymentID       int64  `json:"paymentId"`
	PaymentStatus   string `json:"paymentStatus"`
	DepositDeadline string `json:"depositDeadline"` // ISO 8601
}
