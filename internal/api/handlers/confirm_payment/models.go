package confirm_payment

import (
	"time"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	confirmPayment "github.com/m04kA/KS-SharpeningService/internal/usecase/confirm_payment"
)

// ConfirmPaymentRequest HTTP request model
type ConfirmPaymentRequest struct {
	ConfirmedAmount   int64   `json:"confirmedAmount"`
	DepositDate       string  `json:"depositDate"` // "2026-03-02"
	BankTransactionID *string `json:"bankTransactionId,omitempty"`
	ConfirmationNote  *string `json:"confirmationNote,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ConfirmPaymentRequest) ToUseCaseRequest(paymentID, adminID int64) (*confirmPayment.Request, error) {
	depositDate, err := time.Parse(domain.DateFormat, r.DepositDate)
	if err != nil {
		return nil, err
	}

	return &confirmPayment.Request{
		PaymentID:         paymentID,
		AdminID:           adminID,
		ConfirmedAmount:   r.ConfirmedAmount,
		DepositDate:       depositDate,
		BankTransactionID: r.BankTransactionID,
		ConfirmationNote:  r.ConfirmationNote,
	}, nil
}
