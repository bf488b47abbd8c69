package models

import (
	"errors"
	"time"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid payment status")
)

// Request модели

// ReportDepositRequest сообщение клиента о сделанном переводе
type ReportDepositRequest struct {
	UserID                int64   `json:"userId"`
	DepositorName         string  `json:"depositorName"`
	CustomerBankName      *string `json:"customerBankName,omitempty"`
	CustomerAccountNumber *string `json:"customerAccountNumber,omitempty"`
}

// FailPaymentRequest запрос админа на перевод платежа в failed/rejected
type FailPaymentRequest struct {
	Status string `json:"status"` // failed | rejected
	Note   string `json:"note"`
}

// ListPaymentsRequest админский запрос списка платежей
type ListPaymentsRequest struct {
	Status *string `json:"status,omitempty"`
	Page   int     `json:"page,omitempty"`
	Limit  int     `json:"limit,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListPaymentsRequest) ToDomainFilter() (domain.PaymentsFilter, error) {
	filter := domain.PaymentsFilter{
		Page:  r.Page,
		Limit: r.Limit,
	}

	if r.Status != nil {
		status := domain.PaymentStatus(*r.Status)
		if !status.IsValid() {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BankAccountInfo реквизиты для перевода, отдаются вместе с pending платежом
type BankAccountInfo struct {
	BankName      string `json:"bankName"`
	AccountNumber string `json:"accountNumber"`
	AccountHolder string `json:"accountHolder"`
}

// PaymentResponse ответ с данными платежа
type PaymentResponse struct {
	ID              int64  `json:"id"`
	BookingID       int64  `json:"bookingId"`
	Amount          int64  `json:"amount"`
	DiscountAmount  int64  `json:"discountAmount"`
	InsuranceAmount int64  `json:"insuranceAmount"`
	Method          string `json:"method"`
	Status          string `json:"status"`
	DepositDeadline string `json:"depositDeadline"` // ISO 8601

	DepositorName     *string `json:"depositorName,omitempty"`
	DepositReportedAt *string `json:"depositReportedAt,omitempty"`

	ConfirmedAt       *string `json:"confirmedAt,omitempty"`
	ConfirmedAmount   *int64  `json:"confirmedAmount,omitempty"`
	BankTransactionID *string `json:"bankTransactionId,omitempty"`
	ConfirmationNote  *string `json:"confirmationNote,omitempty"`
	AmountMismatch    bool    `json:"amountMismatch"`

	// Реквизиты платформы, только пока платеж ожидает перевод
	TransferTo *BankAccountInfo `json:"transferTo,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PaymentListResponse ответ со списком платежей
type PaymentListResponse struct {
	Payments []PaymentResponse `json:"payments"`
}

// Методы конвертации

// FromDomainPayment конвертирует domain модель в DTO
func FromDomainPayment(p *domain.Payment) *PaymentResponse {
	if p == nil {
		return nil
	}

	resp := &PaymentResponse{
		ID:                p.ID,
		BookingID:         p.BookingID,
		Amount:            p.Amount,
		DiscountAmount:    p.DiscountAmount,
		InsuranceAmount:   p.InsuranceAmount,
		Method:            string(p.Method),
		Status:            string(p.Status),
		DepositDeadline:   p.DepositDeadline.Format(time.RFC3339),
		DepositorName:     p.DepositorName,
		ConfirmedAmount:   p.ConfirmedAmount,
		BankTransactionID: p.BankTransactionID,
		ConfirmationNote:  p.ConfirmationNote,
		AmountMismatch:    p.AmountMismatch,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}

	if p.DepositReportedAt != nil {
		reportedAt := p.DepositReportedAt.Format(time.RFC3339)
		resp.DepositReportedAt = &reportedAt
	}
	if p.ConfirmedAt != nil {
		confirmedAt := p.ConfirmedAt.Format(time.RFC3339)
		resp.ConfirmedAt = &confirmedAt
	}

	return resp
}

// FromDomainPaymentList конвертирует список domain моделей в DTO
func FromDomainPaymentList(payments []*domain.Payment) *PaymentListResponse {
	resp := &PaymentListResponse{
		Payments: make([]PaymentResponse, 0, len(payments)),
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, *FromDomainPayment(p))
	}
	return resp
}

// FromDomainBankAccount конвертирует счет платформы в DTO реквизитов
func FromDomainBankAccount(a *domain.BankAccount) *BankAccountInfo {
	if a == nil {
		return nil
	}
	return &BankAccountInfo{
		BankName:      a.BankName,
		AccountNumber: a.AccountNumber,
		AccountHolder: a.AccountHolder,
	}
}
