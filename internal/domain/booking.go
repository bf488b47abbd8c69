package domain

import (
	"time"

	"github.com/m04kA/KS-SharpeningService/pkg/types"
)

// BookingStatus represents the fulfillment status of a booking
type BookingStatus string

const (
	BookingStatusPending        BookingStatus = "pending"
	BookingStatusConfirmed      BookingStatus = "confirmed"
	BookingStatusReadyForPickup BookingStatus = "ready_for_pickup"
	BookingStatusInProgress     BookingStatus = "in_progress"
	BookingStatusShipping       BookingStatus = "shipping"
	BookingStatusCompleted      BookingStatus = "completed"
	BookingStatusCancelled      BookingStatus = "cancelled"
)

// bookingStatusRank определяет порядок статусов в пайплайне выполнения.
// Переходы допустимы только вперед; cancelled обрабатывается отдельно.
var bookingStatusRank = map[BookingStatus]int{
	BookingStatusPending:        0,
	BookingStatusConfirmed:      1,
	BookingStatusReadyForPickup: 2,
	BookingStatusInProgress:     3,
	BookingStatusShipping:       4,
	BookingStatusCompleted:      5,
}

// bookingStatusLabels customer-facing labels for each fulfillment stage
var bookingStatusLabels = map[BookingStatus]string{
	BookingStatusPending:        "접수",
	BookingStatusConfirmed:      "일정조율",
	BookingStatusReadyForPickup: "픽업대기",
	BookingStatusInProgress:     "연마중",
	BookingStatusShipping:       "배송중",
	BookingStatusCompleted:      "완료",
	BookingStatusCancelled:      "취소",
}

// IsValid returns true if the status is a known booking status
func (s BookingStatus) IsValid() bool {
	if s == BookingStatusCancelled {
		return true
	}
	_, ok := bookingStatusRank[s]
	return ok
}

// Label returns the customer-facing Korean label of the status
func (s BookingStatus) Label() string {
	return bookingStatusLabels[s]
}

// Booking represents a customer's scheduled knife-sharpening order
type Booking struct {
	ID                  int64
	UserID              int64
	BookingDate         time.Time
	BookingTime         types.TimeString
	Status              BookingStatus
	TotalQuantity       int
	TotalAmount         int64 // integer KRW
	SpecialInstructions *string

	CancellationReason *string
	CancelledAt        *time.Time

	Items []BookingItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BookingItem is a line item of a booking.
// TotalPrice is always UnitPrice * Quantity; items are never mutated after creation.
type BookingItem struct {
	ID            int64
	BookingID     int64
	KnifeTypeID   int64
	KnifeTypeName string // denormalized for history
	Quantity      int
	UnitPrice     int64
	TotalPrice    int64
	Insured       bool
}

// IsTerminal returns true if no further status transitions are possible
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingStatusCompleted || b.Status == BookingStatusCancelled
}

// CanTransitionTo reports whether the fulfillment pipeline allows moving
// to the given status. Forward transitions only; cancellation is allowed
// from any non-terminal state. Setting the current status again is not a
// transition (callers treat it as a no-op).
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	if b.IsTerminal() {
		return false
	}
	if next == BookingStatusCancelled {
		return true
	}
	currentRank, ok := bookingStatusRank[b.Status]
	if !ok {
		return false
	}
	nextRank, ok := bookingStatusRank[next]
	if !ok {
		return false
	}
	return nextRank > currentRank
}

// StartsAt returns the scheduled pickup date and time of the booking
func (b *Booking) StartsAt() (time.Time, error) {
	return b.BookingTime.OnDate(b.BookingDate)
}

// CanBeCancelledByCustomer reports whether the customer may cancel without
// penalty: only while pending or confirmed, and more than CancellationNoticeHours
// before the scheduled pickup time. Later cancellations require manual
// adjudication by an administrator.
func (b *Booking) CanBeCancelledByCustomer(now time.Time) bool {
	if b.Status != BookingStatusPending && b.Status != BookingStatusConfirmed {
		return false
	}
	startsAt, err := b.StartsAt()
	if err != nil {
		return false
	}
	return startsAt.Sub(now) > CancellationNoticeHours*time.Hour
}

// BookingsFilter фильтр для админского списка бронирований
type BookingsFilter struct {
	Status *BookingStatus
	Page   int
	Limit  int
}

// Offset возвращает смещение для пагинации
func (f BookingsFilter) Offset() int {
	page := f.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * f.PageLimit()
}

// PageLimit возвращает размер страницы с дефолтом
func (f BookingsFilter) PageLimit() int {
	if f.Limit <= 0 {
		return 20
	}
	return f.Limit
}
