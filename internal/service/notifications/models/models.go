package models

import "time"

// Request модели

// BroadcastRequest запрос на массовое уведомление всем пользователям
type BroadcastRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Response модели

// BroadcastResponse подтверждение публикации уведомления
type BroadcastResponse struct {
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
}
