package domain

import "time"

// BankAccount is a platform receiving account for bank transfers.
// Exactly one account is the default at any time; the switch is
// performed transactionally (unset all, then set one).
type BankAccount struct {
	ID            int64
	BankName      string
	AccountNumber string
	AccountHolder string
	IsDefault     bool
	Description   *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
