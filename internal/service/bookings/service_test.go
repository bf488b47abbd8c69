package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	bookingRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/payment"
	"github.com/m04kA/KS-SharpeningService/internal/service/bookings/models"
	"github.com/m04kA/KS-SharpeningService/pkg/types"
)

type fakeBookingRepo struct {
	booking *domain.Booking
	getErr  error

	updateErr    error
	updatedFrom  domain.BookingStatus
	updatedTo    domain.BookingStatus
	updatedCalls int

	cancelErr    error
	cancelReason string
	cancelCalls  int
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	return f.booking, f.getErr
}

func (f *fakeBookingRepo) GetByUserID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	return []*domain.Booking{f.booking}, nil
}

func (f *fakeBookingRepo) List(_ context.Context, _ domain.BookingsFilter) ([]*domain.Booking, error) {
	return []*domain.Booking{f.booking}, nil
}

func (f *fakeBookingRepo) UpdateStatusFrom(_ context.Context, _ int64, from, to domain.BookingStatus) error {
	f.updatedCalls++
	f.updatedFrom = from
	f.updatedTo = to
	if f.updateErr == nil {
		f.booking.Status = to
	}
	return f.updateErr
}

func (f *fakeBookingRepo) Cancel(_ context.Context, _ int64, reason string) error {
	f.cancelCalls++
	f.cancelReason = reason
	if f.cancelErr == nil {
		f.booking.Status = domain.BookingStatusCancelled
	}
	return f.cancelErr
}

type fakePaymentRepo struct {
	payment *domain.Payment
	getErr  error

	failErr      error
	failedStatus domain.PaymentStatus
	failCalls    int
}

func (f *fakePaymentRepo) GetByBookingID(_ context.Context, _ int64) (*domain.Payment, error) {
	return f.payment, f.getErr
}

func (f *fakePaymentRepo) FailPending(_ context.Context, _ int64, status domain.PaymentStatus, _ string) error {
	f.failCalls++
	f.failedStatus = status
	return f.failErr
}

type fakeTxManager struct{}

func (f *fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct {
	statusChangedCalls int
	statusFrom         domain.BookingStatus
	statusTo           domain.BookingStatus

	cancelledCalls  int
	cancelledReason string
}

func (f *fakeNotifier) BookingStatusChanged(_, _ int64, from, to domain.BookingStatus) {
	f.statusChangedCalls++
	f.statusFrom = from
	f.statusTo = to
}

func (f *fakeNotifier) BookingCancelled(_, _ int64, reason string) {
	f.cancelledCalls++
	f.cancelledReason = reason
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type bookingsFixture struct {
	svc      *Service
	bookings *fakeBookingRepo
	payments *fakePaymentRepo
	notifier *fakeNotifier
	now      time.Time
}

func newBookingsFixture() *bookingsFixture {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	f := &bookingsFixture{
		bookings: &fakeBookingRepo{
			booking: &domain.Booking{
				ID:          101,
				UserID:      42,
				BookingDate: now.AddDate(0, 0, 3),
				BookingTime: types.TimeString("14:00"),
				Status:      domain.BookingStatusPending,
				TotalAmount: 37000,
			},
		},
		payments: &fakePaymentRepo{
			payment: &domain.Payment{
				ID:        201,
				BookingID: 101,
				Status:    domain.PaymentStatusPending,
			},
		},
		notifier: &fakeNotifier{},
		now:      now,
	}

	f.svc = NewService(f.bookings, f.payments, &fakeTxManager{}, f.notifier, &fakeClock{now: now}, nopLogger{})
	return f
}

func TestGetByID_OwnBooking(t *testing.T) {
	f := newBookingsFixture()

	resp, err := f.svc.GetByID(context.Background(), 101, 42)
	assert.NoError(t, err)
	assert.Equal(t, int64(101), resp.ID)
	assert.Equal(t, string(domain.BookingStatusPending), resp.Status)
}

func TestGetByID_OtherUsersBooking(t *testing.T) {
	f := newBookingsFixture()

	_, err := f.svc.GetByID(context.Background(), 101, 777)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	f := newBookingsFixture()
	f.bookings.booking = nil
	f.bookings.getErr = bookingRepo.ErrBookingNotFound

	_, err := f.svc.GetByID(context.Background(), 999, 42)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestUpdateStatus_AdvancesPipeline(t *testing.T) {
	f := newBookingsFixture()

	resp, err := f.svc.UpdateStatus(context.Background(), 101, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.NoError(t, err)

	assert.Equal(t, string(domain.BookingStatusConfirmed), resp.Status)
	assert.Equal(t, domain.BookingStatusPending, f.bookings.updatedFrom)
	assert.Equal(t, domain.BookingStatusConfirmed, f.bookings.updatedTo)
	assert.Equal(t, 1, f.notifier.statusChangedCalls)
}

func TestUpdateStatus_SkippingStagesAllowed(t *testing.T) {
	f := newBookingsFixture()
	f.bookings.booking.Status = domain.BookingStatusConfirmed

	resp, err := f.svc.UpdateStatus(context.Background(), 101, &models.UpdateStatusRequest{Status: "in_progress"})
	assert.NoError(t, err)
	assert.Equal(t, string(domain.BookingStatusInProgress), resp.Status)
}

func TestUpdateStatus_SameStatusIsNoOp(t *testing.T) {
	f := newBookingsFixture()
	f.bookings.booking.Status = domain.BookingStatusConfirmed

	resp, err := f.svc.UpdateStatus(context.Background(), 101, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.NoError(t, err)

	assert.Equal(t, string(domain.BookingStatusConfirmed), resp.Status)
	assert.Equal(t, 0, f.bookings.updatedCalls)
	assert.Equal(t, 0, f.notifier.statusChangedCalls)
}

func TestUpdateStatus_BackwardTransitionRejected(t *testing.T) {
	f := newBookingsFixture()
	f.bookings.booking.Status = domain.BookingStatusInProgress

	_, err := f.svc.UpdateStatus(context.Background(), 101, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrIllegalTransition)
	assert.Equal(t, 0, f.bookings.updatedCalls)
}

func TestUpdateStatus_TerminalStatusesFrozen(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.BookingStatusCompleted, domain.BookingStatusCancelled} {
		t.Run(string(status), func(t *testing.T) {
			f := newBookingsFixture()
			f.bookings.booking.Status = status

			_, err := f.svc.UpdateStatus(context.Background(), 101, &models.UpdateStatusRequest{Status: "shipping"})
			assert.ErrorIs(t, err, ErrIllegalTransition)
		})
	}
}

func TestUpdateStatus_UnknownStatus(t *testing.T) {
	f := newBookingsFixture()

	_, err := f.svc.UpdateStatus(context.Background(), 101, &models.UpdateStatusRequest{Status: "delivered"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestUpdateStatus_ConcurrentTransitionLoses(t *testing.T) {
	f := newBookingsFixture()
	f.bookings.updateErr = bookingRepo.ErrStatusConflict

	_, err := f.svc.UpdateStatus(context.Background(), 101, &models.UpdateStatusRequest{Status: "confirmed"})
	assert.ErrorIs(t, err, ErrStatusConflict)
	assert.Equal(t, 0, f.notifier.statusChangedCalls)
}

func TestCancel_CancelsBookingAndPendingPayment(t *testing.T) {
	f := newBookingsFixture()

	resp, err := f.svc.Cancel(context.Background(), 101, &models.CancelBookingRequest{
		UserID:             42,
		CancellationReason: "일정 변경",
	})
	assert.NoError(t, err)

	assert.Equal(t, string(domain.BookingStatusCancelled), resp.Status)
	assert.Equal(t, "취소", resp.StatusLabel)
	assert.Equal(t, "일정 변경", f.bookings.cancelReason)

	assert.Equal(t, 1, f.payments.failCalls)
	assert.Equal(t, domain.PaymentStatusCancelled, f.payments.failedStatus)

	assert.Equal(t, 1, f.notifier.cancelledCalls)
	assert.Equal(t, "일정 변경", f.notifier.cancelledReason)
}

func TestCancel_ConfirmedPaymentLeftIntact(t *testing.T) {
	f := newBookingsFixture()
	f.payments.payment.Status = domain.PaymentStatusConfirmed

	_, err := f.svc.Cancel(context.Background(), 101, &models.CancelBookingRequest{UserID: 42})
	assert.NoError(t, err)
	assert.Equal(t, 0, f.payments.failCalls)
}

func TestCancel_NoPaymentIsFine(t *testing.T) {
	f := newBookingsFixture()
	f.payments.payment = nil
	f.payments.getErr = paymentRepo.ErrPaymentNotFound

	_, err := f.svc.Cancel(context.Background(), 101, &models.CancelBookingRequest{UserID: 42})
	assert.NoError(t, err)
}

func TestCancel_TooCloseToPickup(t *testing.T) {
	f := newBookingsFixture()
	f.bookings.booking.BookingDate = f.now
	f.bookings.booking.BookingTime = types.TimeString("18:00")

	_, err := f.svc.Cancel(context.Background(), 101, &models.CancelBookingRequest{UserID: 42})
	assert.ErrorIs(t, err, ErrCannotCancel)
	assert.Equal(t, 0, f.bookings.cancelCalls)
}

func TestCancel_InProgressBooking(t *testing.T) {
	f := newBookingsFixture()
	f.bookings.booking.Status = domain.BookingStatusInProgress

	_, err := f.svc.Cancel(context.Background(), 101, &models.CancelBookingRequest{UserID: 42})
	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_OtherUsersBooking(t *testing.T) {
	f := newBookingsFixture()

	_, err := f.svc.Cancel(context.Background(), 101, &models.CancelBookingRequest{UserID: 777})
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Equal(t, 0, f.bookings.cancelCalls)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	f := newBookingsFixture()

	bad := "delivered"
	_, err := f.svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 42, Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
