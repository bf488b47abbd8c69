package confirm_payment

import "time"

// Request входные данные подтверждения платежа админом
type Request struct {
	PaymentID         int64
	AdminID           int64
	ConfirmedAmount   int64
	DepositDate       time.Time
	BankTransactionID *string
	ConfirmationNote  *string
}

// Response результат подтверждения
type Response struct {
	PaymentID       int64  `json:"paymentId"`
	BookingID       int64  `json:"bookingId"`
	Status          string `json:"status"`
	ConfirmedAmount int64  `json:"confirmedAmount"`
	ExpectedAmount  int64  `json:"expectedAmount"`

	// true, если подтвержденная сумма не совпала с суммой заказа.
	// Расхождение фиксируется, но не блокирует подтверждение.
	AmountMismatch bool `json:"amountMismatch"`

	// Статус бронирования после подтверждения (может измениться
	// при включенном авто-подтверждении)
	BookingStatus string `json:"bookingStatus"`
}
