package domain

import "time"

// AdminRole роль администратора
type AdminRole string

const (
	AdminRoleSuperAdmin AdminRole = "super_admin"
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleManager    AdminRole = "manager"
)

// IsValid returns true if the role is known
func (r AdminRole) IsValid() bool {
	return r == AdminRoleSuperAdmin || r == AdminRoleAdmin || r == AdminRoleManager
}

// CanManageAdmins reports whether the role may create or deactivate
// admin accounts. super_admin has implicit wildcard permission.
func (r AdminRole) CanManageAdmins() bool {
	return r == AdminRoleSuperAdmin
}

// Admin is an administrator account. Credentials are bcrypt-hashed;
// there is no fallback authentication path.
type Admin struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	Role         AdminRole
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
}
