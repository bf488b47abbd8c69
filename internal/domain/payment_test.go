package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStatus_IsTerminal(t *testing.T) {
	assert.False(t, PaymentStatusPending.IsTerminal())

	for _, status := range []PaymentStatus{
		PaymentStatusConfirmed,
		PaymentStatusFailed,
		PaymentStatusRejected,
		PaymentStatusCancelled,
		PaymentStatusExpired,
	} {
		assert.True(t, status.IsTerminal(), "status=%s", status)
	}
}

func TestPayment_DeadlinePassed(t *testing.T) {
	deadline := time.Date(2025, 10, 15, 18, 0, 0, 0, time.UTC)
	p := &Payment{Status: PaymentStatusPending, DepositDeadline: deadline}

	assert.False(t, p.DeadlinePassed(deadline.Add(-time.Hour)))
	assert.True(t, p.DeadlinePassed(deadline.Add(time.Minute)))
}
