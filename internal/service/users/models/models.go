package models

import (
	"time"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
)

// Request модели

// RequestCodeRequest запрос кода подтверждения по SMS
type RequestCodeRequest struct {
	Phone string `json:"phone"`
}

// VerifyCodeRequest проверка кода; Name обязателен только при регистрации
type VerifyCodeRequest struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
	Name  string `json:"name,omitempty"`
}

// Response модели

// RequestCodeResponse ответ на запрос кода
type RequestCodeResponse struct {
	ExpiresInSeconds int `json:"expiresInSeconds"`
}

// UserResponse ответ с данными пользователя
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`

	// true, если аккаунт создан этим запросом
	IsNew bool `json:"isNew"`
}

// Методы конвертации

// FromDomainUser конвертирует domain модель в DTO
func FromDomainUser(u *domain.User, isNew bool) *UserResponse {
	if u == nil {
		return nil
	}
	return &UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
		IsNew:     isNew,
	}
}
