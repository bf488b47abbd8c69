package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/KS-SharpeningService/pkg/types"
)

func TestBooking_CanTransitionTo_ForwardOnly(t *testing.T) {
	b := &Booking{Status: BookingStatusShipping}

	assert.True(t, b.CanTransitionTo(BookingStatusCompleted))

	// Движение назад по пайплайну запрещено
	assert.False(t, b.CanTransitionTo(BookingStatusConfirmed))
	assert.False(t, b.CanTransitionTo(BookingStatusPending))
	assert.False(t, b.CanTransitionTo(BookingStatusInProgress))
}

func TestBooking_CanTransitionTo_SkippingStagesAllowed(t *testing.T) {
	b := &Booking{Status: BookingStatusPending}

	// Админ может перевести заказ через несколько стадий вперед
	assert.True(t, b.CanTransitionTo(BookingStatusReadyForPickup))
	assert.True(t, b.CanTransitionTo(BookingStatusCompleted))
}

func TestBooking_CanTransitionTo_Cancellation(t *testing.T) {
	for _, status := range []BookingStatus{
		BookingStatusPending,
		BookingStatusConfirmed,
		BookingStatusReadyForPickup,
		BookingStatusInProgress,
		BookingStatusShipping,
	} {
		b := &Booking{Status: status}
		assert.True(t, b.CanTransitionTo(BookingStatusCancelled), "status=%s", status)
	}

	// Терминальные статусы неизменяемы
	completed := &Booking{Status: BookingStatusCompleted}
	assert.False(t, completed.CanTransitionTo(BookingStatusCancelled))

	cancelled := &Booking{Status: BookingStatusCancelled}
	assert.False(t, cancelled.CanTransitionTo(BookingStatusConfirmed))
}

func TestBooking_CanBeCancelledByCustomer(t *testing.T) {
	now := time.Date(2025, 10, 14, 9, 0, 0, 0, time.UTC)
	booking := &Booking{
		Status:      BookingStatusPending,
		BookingDate: time.Date(2025, 10, 16, 0, 0, 0, 0, time.UTC),
		BookingTime: types.TimeString("10:00"),
	}

	// Более чем за 24 часа до начала - можно
	assert.True(t, booking.CanBeCancelledByCustomer(now))

	// Менее чем за 24 часа - нельзя
	late := time.Date(2025, 10, 15, 12, 0, 0, 0, time.UTC)
	assert.False(t, booking.CanBeCancelledByCustomer(late))

	// После начала обработки - нельзя независимо от времени
	booking.Status = BookingStatusInProgress
	assert.False(t, booking.CanBeCancelledByCustomer(now))
}

func TestBookingStatus_Label(t *testing.T) {
	assert.Equal(t, "접수", BookingStatusPending.Label())
	assert.Equal(t, "일정조율", BookingStatusConfirmed.Label())
	assert.Equal(t, "픽업대기", BookingStatusReadyForPickup.Label())
	assert.Equal(t, "연마중", BookingStatusInProgress.Label())
	assert.Equal(t, "배송중", BookingStatusShipping.Label())
	assert.Equal(t, "완료", BookingStatusCompleted.Label())
}
