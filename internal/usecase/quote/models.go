package quote

// ItemRequest одна позиция расчета
type ItemRequest struct {
	KnifeTypeID int64
	Quantity    int
	Insured     bool
}

// Request входные данные расчета стоимости
type Request struct {
	UserID       int64
	Items        []ItemRequest
	UserCouponID *int64
}

// ItemResponse расцененная позиция
type ItemResponse struct {
	KnifeTypeID   int64  `json:"knifeTypeId"`
	KnifeTypeName string `json:"knifeTypeName"`
	Quantity      int    `json:"quantity"`
	UnitPrice     int64  `json:"unitPrice"`
	TotalPrice    int64  `json:"totalPrice"`
	Insured       bool   `json:"insured"`
}

// Response результат расчета; те же суммы попадут в заказ при оформлении
type Response struct {
	Items []ItemResponse `json:"items"`

	ServiceAmount   int64 `json:"serviceAmount"`
	InsuranceAmount int64 `json:"insuranceAmount"`
	DiscountAmount  int64 `json:"discountAmount"`
	TotalAmount     int64 `json:"totalAmount"`
}
