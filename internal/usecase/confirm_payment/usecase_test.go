package confirm_payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	bookingRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/payment"
)

type fakePaymentRepo struct {
	payment *domain.Payment
	getErr  error

	confirmErr    error
	confirmedID   int64
	confirmParams paymentRepo.ConfirmParams
	confirmCalls  int
}

func (f *fakePaymentRepo) GetByID(_ context.Context, _ int64) (*domain.Payment, error) {
	return f.payment, f.getErr
}

func (f *fakePaymentRepo) ConfirmPending(_ context.Context, id int64, params paymentRepo.ConfirmParams) error {
	f.confirmCalls++
	f.confirmedID = id
	f.confirmParams = params
	return f.confirmErr
}

type fakeBookingRepo struct {
	booking *domain.Booking

	updateErr    error
	updatedFrom  domain.BookingStatus
	updatedTo    domain.BookingStatus
	updatedCalls int
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	return f.booking, nil
}

func (f *fakeBookingRepo) UpdateStatusFrom(_ context.Context, _ int64, from, to domain.BookingStatus) error {
	f.updatedCalls++
	f.updatedFrom = from
	f.updatedTo = to
	return f.updateErr
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct {
	paymentConfirmedCalls int
	confirmedAmount       int64
	mismatch              bool

	statusChangedCalls int
	statusFrom         domain.BookingStatus
	statusTo           domain.BookingStatus
}

func (f *fakeNotifier) PaymentConfirmed(_, _ int64, confirmedAmount int64, mismatch bool) {
	f.paymentConfirmedCalls++
	f.confirmedAmount = confirmedAmount
	f.mismatch = mismatch
}

func (f *fakeNotifier) BookingStatusChanged(_, _ int64, from, to domain.BookingStatus) {
	f.statusChangedCalls++
	f.statusFrom = from
	f.statusTo = to
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type confirmFixture struct {
	uc       *UseCase
	payments *fakePaymentRepo
	bookings *fakeBookingRepo
	notifier *fakeNotifier
}

func newConfirmFixture(autoConfirm bool) *confirmFixture {
	f := &confirmFixture{
		payments: &fakePaymentRepo{
			payment: &domain.Payment{
				ID:        201,
				BookingID: 101,
				Amount:    37000,
				Status:    domain.PaymentStatusPending,
			},
		},
		bookings: &fakeBookingRepo{
			booking: &domain.Booking{
				ID:     101,
				UserID: 42,
				Status: domain.BookingStatusPending,
			},
		},
		notifier: &fakeNotifier{},
	}

	f.uc = NewUseCase(f.payments, f.bookings, &fakeTxManager{}, f.notifier, autoConfirm, nopLogger{})
	return f
}

func validRequest() *Request {
	return &Request{
		PaymentID:       201,
		AdminID:         5,
		ConfirmedAmount: 37000,
		DepositDate:     time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
	}
}

func TestExecute_ConfirmsPaymentAndAdvancesBooking(t *testing.T) {
	f := newConfirmFixture(true)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)

	assert.Equal(t, int64(201), resp.PaymentID)
	assert.Equal(t, string(domain.PaymentStatusConfirmed), resp.Status)
	assert.False(t, resp.AmountMismatch)
	assert.Equal(t, string(domain.BookingStatusConfirmed), resp.BookingStatus)

	assert.Equal(t, int64(201), f.payments.confirmedID)
	assert.Equal(t, int64(5), f.payments.confirmParams.ConfirmedBy)
	assert.False(t, f.payments.confirmParams.AmountMismatch)

	assert.Equal(t, 1, f.bookings.updatedCalls)
	assert.Equal(t, domain.BookingStatusPending, f.bookings.updatedFrom)
	assert.Equal(t, domain.BookingStatusConfirmed, f.bookings.updatedTo)

	assert.Equal(t, 1, f.notifier.paymentConfirmedCalls)
	assert.Equal(t, 1, f.notifier.statusChangedCalls)
	assert.Equal(t, domain.BookingStatusConfirmed, f.notifier.statusTo)
}

func TestExecute_AmountMismatchRecordedNotBlocked(t *testing.T) {
	f := newConfirmFixture(true)

	req := validRequest()
	req.ConfirmedAmount = 30000

	resp, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)

	assert.True(t, resp.AmountMismatch)
	assert.Equal(t, int64(30000), resp.ConfirmedAmount)
	assert.Equal(t, int64(37000), resp.ExpectedAmount)

	assert.True(t, f.payments.confirmParams.AmountMismatch)
	assert.Equal(t, int64(30000), f.payments.confirmParams.ConfirmedAmount)
	assert.True(t, f.notifier.mismatch)
}

func TestExecute_SecondConfirmationLosesRace(t *testing.T) {
	f := newConfirmFixture(true)
	f.payments.confirmErr = paymentRepo.ErrStatusConflict

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNotPending)
	assert.Equal(t, 0, f.notifier.paymentConfirmedCalls)
}

func TestExecute_TerminalPaymentRejected(t *testing.T) {
	terminal := []domain.PaymentStatus{
		domain.PaymentStatusConfirmed,
		domain.PaymentStatusFailed,
		domain.PaymentStatusRejected,
		domain.PaymentStatusCancelled,
		domain.PaymentStatusExpired,
	}

	for _, status := range terminal {
		t.Run(string(status), func(t *testing.T) {
			f := newConfirmFixture(true)
			f.payments.payment.Status = status

			_, err := f.uc.Execute(context.Background(), validRequest())
			assert.ErrorIs(t, err, ErrNotPending)
			assert.Equal(t, 0, f.payments.confirmCalls)
		})
	}
}

func TestExecute_PaymentNotFound(t *testing.T) {
	f := newConfirmFixture(true)
	f.payments.payment = nil
	f.payments.getErr = paymentRepo.ErrPaymentNotFound

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestExecute_AutoConfirmDisabledLeavesBooking(t *testing.T) {
	f := newConfirmFixture(false)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)

	assert.Equal(t, 0, f.bookings.updatedCalls)
	assert.Equal(t, string(domain.BookingStatusPending), resp.BookingStatus)
	assert.Equal(t, 0, f.notifier.statusChangedCalls)
}

func TestExecute_BookingMovedConcurrentlyKeepsPayment(t *testing.T) {
	f := newConfirmFixture(true)
	f.bookings.updateErr = bookingRepo.ErrStatusConflict

	resp, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)

	// Платеж подтвержден, но статус бронирования не меняли
	assert.Equal(t, 1, f.payments.confirmCalls)
	assert.Equal(t, string(domain.BookingStatusPending), resp.BookingStatus)
	assert.Equal(t, 0, f.notifier.statusChangedCalls)
}

func TestExecute_NonPendingBookingNotAdvanced(t *testing.T) {
	f := newConfirmFixture(true)
	f.bookings.booking.Status = domain.BookingStatusConfirmed

	resp, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)

	assert.Equal(t, 0, f.bookings.updatedCalls)
	assert.Equal(t, string(domain.BookingStatusConfirmed), resp.BookingStatus)
}

func TestExecute_ValidationRejectsBadInput(t *testing.T) {
	f := newConfirmFixture(true)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing payment", func(r *Request) { r.PaymentID = 0 }},
		{"missing admin", func(r *Request) { r.AdminID = 0 }},
		{"zero amount", func(r *Request) { r.ConfirmedAmount = 0 }},
		{"missing deposit date", func(r *Request) { r.DepositDate = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
