package domain

import "time"

// InsuranceProduct platform-wide damage insurance offering.
// PremiumPerUnit is the per-knife premium applied at checkout.
type InsuranceProduct struct {
	ID             int64
	Name           string
	PremiumPerUnit int64
	CoverageAmount int64
	IsActive       bool
	CreatedAt      time.Time
}

// PolicyStatus статус страхового полиса
type PolicyStatus string

const (
	PolicyStatusActive    PolicyStatus = "active"
	PolicyStatusExpired   PolicyStatus = "expired"
	PolicyStatusCancelled PolicyStatus = "cancelled"
)

// UserInsurance is a damage insurance policy covering a user
// for a coverage amount over a date range
type UserInsurance struct {
	ID             int64
	UserID         int64
	ProductID      int64
	CoverageAmount int64
	StartDate      time.Time
	EndDate        time.Time
	Status         PolicyStatus
	CreatedAt      time.Time
}

// IsActiveAt reports whether the policy covers the given moment
func (p *UserInsurance) IsActiveAt(now time.Time) bool {
	return p.Status == PolicyStatusActive &&
		!now.Before(p.StartDate) &&
		!now.After(p.EndDate)
}

// RemainingCoverage returns the coverage left after approved claims
func (p *UserInsurance) RemainingCoverage(approvedTotal int64) int64 {
	remaining := p.CoverageAmount - approvedTotal
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ClaimStatus статус рассмотрения страхового требования
type ClaimStatus string

const (
	ClaimStatusPending  ClaimStatus = "pending"
	ClaimStatusApproved ClaimStatus = "approved"
	ClaimStatusRejected ClaimStatus = "rejected"
)

// InsuranceClaim is a damage claim filed against an active policy
type InsuranceClaim struct {
	ID                int64
	PolicyID          int64
	UserID            int64
	ClaimAmount       int64
	DamageDescription string
	DamagePhotos      []string // URLs, upload handled elsewhere
	ClaimReason       string
	Status            ClaimStatus
	ReviewNote        *string
	ReviewedAt        *time.Time
	ReviewedBy        *int64
	CreatedAt         time.Time
}
