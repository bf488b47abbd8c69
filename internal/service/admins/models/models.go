package models

import (
	"time"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
)

// Request модели

// LoginRequest запрос на вход в админ-панель
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateAdminRequest запрос на создание аккаунта администратора
type CreateAdminRequest struct {
	ActorID  int64  `json:"-"` // кто создает, из токена
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// DeactivateAdminRequest запрос на деактивацию аккаунта
type DeactivateAdminRequest struct {
	ActorID int64 `json:"-"` // кто деактивирует, из токена
}

// Response модели

// LoginResponse ответ на успешный вход
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expiresAt"`
	Admin     AdminResponse `json:"admin"`
}

// AdminResponse ответ с данными администратора, без хеша пароля
type AdminResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Методы конвертации

// FromDomainAdmin конвертирует domain модель в DTO
func FromDomainAdmin(a *domain.Admin) *AdminResponse {
	if a == nil {
		return nil
	}
	return &AdminResponse{
		ID:          a.ID,
		Email:       a.Email,
		Name:        a.Name,
		Role:        string(a.Role),
		IsActive:    a.IsActive,
		LastLoginAt: a.LastLoginAt,
		CreatedAt:   a.CreatedAt,
	}
}
