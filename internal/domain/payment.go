package domain

import "time"

// PaymentStatus represents the settlement status of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusConfirmed PaymentStatus = "confirmed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRejected  PaymentStatus = "rejected"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusExpired   PaymentStatus = "expired"
)

// IsValid returns true if the status is a known payment status
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusConfirmed, PaymentStatusFailed,
		PaymentStatusRejected, PaymentStatusCancelled, PaymentStatusExpired:
		return true
	}
	return false
}

// IsTerminal returns true for every status except pending.
// Only pending payments may transition; all other states are final.
func (s PaymentStatus) IsTerminal() bool {
	return s != PaymentStatusPending
}

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodSimple       PaymentMethod = "simple"
)

// IsValid returns true if the method is supported
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodBankTransfer || m == PaymentMethodSimple
}

// Payment is the monetary settlement record tied 1:1 to a Booking.
// Its state machine is independent of the fulfillment status.
type Payment struct {
	ID              int64
	BookingID       int64
	Amount          int64 // final payable amount, integer KRW
	DiscountAmount  int64
	InsuranceAmount int64
	Method          PaymentMethod
	Status          PaymentStatus

	// Soft cutoff for bank-transfer deposits while pending
	DepositDeadline time.Time

	// Customer deposit report (a signal, never a status transition)
	DepositorName     *string
	DepositReportedAt *time.Time

	// Refund routing details provided by the customer
	CustomerBankName      *string
	CustomerAccountNumber *string

	// Admin confirmation audit trail
	ConfirmedAt       *time.Time
	ConfirmedAmount   *int64
	DepositDate       *time.Time
	BankTransactionID *string
	ConfirmationNote  *string
	ConfirmedBy       *int64
	AmountMismatch    bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsPending returns true while the payment may still transition
func (p *Payment) IsPending() bool {
	return p.Status == PaymentStatusPending
}

// DeadlinePassed reports whether the deposit deadline has expired
func (p *Payment) DeadlinePassed(now time.Time) bool {
	return now.After(p.DepositDeadline)
}

// PaymentsFilter фильтр для админского списка платежей
type PaymentsFilter struct {
	Status *PaymentStatus
	Page   int
	Limit  int
}

// Offset возвращает смещение для пагинации
func (f PaymentsFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.PageLimit()
}

// PageLimit возвращает размер страницы с дефолтом
func (f PaymentsFilter) PageLimit() int {
	if f.Limit <= 0 {
		return 20
	}
	return f.Limit
}
