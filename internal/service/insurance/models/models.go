package models

import (
	"time"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
)

// Request модели

// CreateClaimRequest запрос клиента на страховое возмещение
type CreateClaimRequest struct {
	UserID            int64    `json:"-"` // из заголовка аутентификации
	PolicyID          int64    `json:"policyId"`
	ClaimAmount       int64    `json:"claimAmount"`
	DamageDescription string   `json:"damageDescription"`
	DamagePhotos      []string `json:"damagePhotos,omitempty"`
	ClaimReason       string   `json:"claimReason"`
}

// ReviewClaimRequest решение админа по требованию
type ReviewClaimRequest struct {
	ReviewerID int64   `json:"-"` // из токена
	Approve    bool    `json:"approve"`
	Note       *string `json:"note,omitempty"`
}

// ListClaimsRequest админский запрос списка требований
type ListClaimsRequest struct {
	Status *string `json:"status,omitempty"`
}

// Response модели

// ProductResponse ответ с данными страхового продукта
type ProductResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	PremiumPerUnit int64  `json:"premiumPerUnit"`
	CoverageAmount int64  `json:"coverageAmount"`
}

// PolicyResponse ответ с данными полиса
type PolicyResponse struct {
	ID                int64     `json:"id"`
	ProductID         int64     `json:"productId"`
	CoverageAmount    int64     `json:"coverageAmount"`
	RemainingCoverage int64     `json:"remainingCoverage"`
	StartDate         string    `json:"startDate"`
	EndDate           string    `json:"endDate"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
}

// PolicyListResponse ответ со списком полисов
type PolicyListResponse struct {
	Policies []PolicyResponse `json:"policies"`
}

// ClaimResponse ответ с данными требования
type ClaimResponse struct {
	ID                int64      `json:"id"`
	PolicyID          int64      `json:"policyId"`
	UserID            int64      `json:"userId"`
	ClaimAmount       int64      `json:"claimAmount"`
	DamageDescription string     `json:"damageDescription"`
	DamagePhotos      []string   `json:"damagePhotos,omitempty"`
	ClaimReason       string     `json:"claimReason"`
	Status            string     `json:"status"`
	ReviewNote        *string    `json:"reviewNote,omitempty"`
	ReviewedAt        *time.Time `json:"reviewedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// ClaimListResponse ответ со списком требований
type ClaimListResponse struct {
	Claims []ClaimResponse `json:"claims"`
}

// Методы конвертации

// FromDomainProduct конвертирует domain модель в DTO
func FromDomainProduct(p *domain.InsuranceProduct) *ProductResponse {
	if p == nil {
		return nil
	}
	return &ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		PremiumPerUnit: p.PremiumPerUnit,
		CoverageAmount: p.CoverageAmount,
	}
}

// FromDomainPolicy конвертирует domain модель в DTO
func FromDomainPolicy(p *domain.UserInsurance, remaining int64) *PolicyResponse {
	if p == nil {
		return nil
	}
	return &PolicyResponse{
		ID:                p.ID,
		ProductID:         p.ProductID,
		CoverageAmount:    p.CoverageAmount,
		RemainingCoverage: remaining,
		StartDate:         p.StartDate.Format(domain.DateFormat),
		EndDate:           p.EndDate.Format(domain.DateFormat),
		Status:            string(p.Status),
		CreatedAt:         p.CreatedAt,
	}
}

// FromDomainClaim конвертирует domain модель в DTO
func FromDomainClaim(c *domain.InsuranceClaim) *ClaimResponse {
	if c == nil {
		return nil
	}
	return &ClaimResponse{
		ID:                c.ID,
		PolicyID:          c.PolicyID,
		UserID:            c.UserID,
		ClaimAmount:       c.ClaimAmount,
		DamageDescription: c.DamageDescription,
		DamagePhotos:      c.DamagePhotos,
		ClaimReason:       c.ClaimReason,
		Status:            string(c.Status),
		ReviewNote:        c.ReviewNote,
		ReviewedAt:        c.ReviewedAt,
		CreatedAt:         c.CreatedAt,
	}
}

// FromDomainClaimList конвертирует список domain моделей в DTO
func FromDomainClaimList(claims []domain.InsuranceClaim) *ClaimListResponse {
	resp := &ClaimListResponse{
		Claims: make([]ClaimResponse, 0, len(claims)),
	}
	for i := range claims {
		resp.Claims = append(resp.Claims, *FromDomainClaim(&claims[i]))
	}
	return resp
}
