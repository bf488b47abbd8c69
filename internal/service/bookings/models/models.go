package models

import (
	"errors"
	"time"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос админа на смену статуса выполнения
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// ListBookingsRequest админский запрос списка бронирований
type ListBookingsRequest struct {
	Status *string `json:"status,omitempty"`
	Page   int     `json:"page,omitempty"`
	Limit  int     `json:"limit,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		Page:  r.Page,
		Limit: r.Limit,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingItemResponse позиция заказа
type BookingItemResponse struct {
	ID            int64  `json:"id"`
	KnifeTypeID   int64  `json:"knifeTypeId"`
	KnifeTypeName string `json:"knifeTypeName"`
	Quantity      int    `json:"quantity"`
	UnitPrice     int64  `json:"unitPrice"`
	TotalPrice    int64  `json:"totalPrice"`
	Insured       bool   `json:"insured"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64  `json:"id"`
	UserID        int64  `json:"userId"`
	BookingDate   string `json:"bookingDate"` // "2026-03-15"
	BookingTime   string `json:"bookingTime"` // "10:00"
	Status        string `json:"status"`
	StatusLabel   string `json:"statusLabel"` // 접수, 일정조율, ...
	TotalQuantity int    `json:"totalQuantity"`
	TotalAmount   int64  `json:"totalAmount"`

	SpecialInstructions *string `json:"specialInstructions,omitempty"`
	CancellationReason  *string `json:"cancellationReason,omitempty"`
	CancelledAt         *string `json:"cancelledAt,omitempty"` // ISO 8601

	Items []BookingItemResponse `json:"items"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                  b.ID,
		UserID:              b.UserID,
		BookingDate:         b.BookingDate.Format(domain.DateFormat),
		BookingTime:         b.BookingTime.String(),
		Status:              string(b.Status),
		StatusLabel:         b.Status.Label(),
		TotalQuantity:       b.TotalQuantity,
		TotalAmount:         b.TotalAmount,
		SpecialInstructions: b.SpecialInstructions,
		CancellationReason:  b.CancellationReason,
		Items:               make([]BookingItemResponse, 0, len(b.Items)),
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	for _, item := range b.Items {
		resp.Items = append(resp.Items, BookingItemResponse{
			ID:            item.ID,
			KnifeTypeID:   item.KnifeTypeID,
			KnifeTypeName: item.KnifeTypeName,
			Quantity:      item.Quantity,
			UnitPrice:     item.UnitPrice,
			TotalPrice:    item.TotalPrice,
			Insured:       item.Insured,
		})
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
