package models

import (
	"time"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
)

// Request модели

// CreateAccountRequest запрос на добавление счета платформы
type CreateAccountRequest struct {
	BankName      string  `json:"bankName"`
	AccountNumber string  `json:"accountNumber"`
	AccountHolder string  `json:"accountHolder"`
	IsDefault     bool    `json:"isDefault"`
	Description   *string `json:"description,omitempty"`
}

// Response модели

// AccountResponse ответ с данными счета
type AccountResponse struct {
	ID            int64     `json:"id"`
	BankName      string    `json:"bankName"`
	AccountNumber string    `json:"accountNumber"`
	AccountHolder string    `json:"accountHolder"`
	IsDefault     bool      `json:"isDefault"`
	Description   *string   `json:"description,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// AccountListResponse ответ со списком счетов
type AccountListResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// Методы конвертации

// FromDomainAccount конвертирует domain модель в DTO
func FromDomainAccount(a *domain.BankAccount) *AccountResponse {
	if a == nil {
		return nil
	}
	return &AccountResponse{
		ID:            a.ID,
		BankName:      a.BankName,
		AccountNumber: a.AccountNumber,
		AccountHolder: a.AccountHolder,
		IsDefault:     a.IsDefault,
		Description:   a.Description,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// FromDomainAccountList конвертирует список domain моделей в DTO
func FromDomainAccountList(accounts []*domain.BankAccount) *AccountListResponse {
	resp := &AccountListResponse{
		Accounts: make([]AccountResponse, 0, len(accounts)),
	}
	for _, a := range accounts {
		resp.Accounts = append(resp.Accounts, *FromDomainAccount(a))
	}
	return resp
}
