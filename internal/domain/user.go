package domain

import "time"

// User is a customer record. Signup and login go through phone
// verification codes; there is no password.
type User struct {
	ID        int64
	Name      string
	Phone     string // normalized, digits only (e.g. 01012345678)
	CreatedAt time.Time
}
