package payments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	bankaccountRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/bankaccount"
	paymentRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/payment"
	"github.com/m04kA/KS-SharpeningService/internal/service/payments/models"
)

type fakePaymentRepo struct {
	payment *domain.Payment
	getErr  error

	failErr      error
	failedStatus domain.PaymentStatus
	failedNote   string
	failCalls    int

	reportErr     error
	reportedName  string
	reportedCalls int

	listed []*domain.Payment
}

func (f *fakePaymentRepo) GetByID(_ context.Context, _ int64) (*domain.Payment, error) {
	return f.payment, f.getErr
}

func (f *fakePaymentRepo) GetByBookingID(_ context.Context, _ int64) (*domain.Payment, error) {
	return f.payment, f.getErr
}

func (f *fakePaymentRepo) List(_ context.Context, _ domain.PaymentsFilter) ([]*domain.Payment, error) {
	return f.listed, nil
}

func (f *fakePaymentRepo) FailPending(_ context.Context, _ int64, status domain.PaymentStatus, note string) error {
	f.failCalls++
	f.failedStatus = status
	f.failedNote = note
	return f.failErr
}

func (f *fakePaymentRepo) MarkDepositReported(_ context.Context, _ int64, depositorName string, _, _ *string) error {
	f.reportedCalls++
	f.reportedName = depositorName
	return f.reportErr
}

type fakeBookingRepo struct {
	booking *domain.Booking
	getErr  error
}

func (f *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	return f.booking, f.getErr
}

type fakeBankAccountRepo struct {
	account *domain.BankAccount
	getErr  error
}

func (f *fakeBankAccountRepo) GetDefault(_ context.Context) (*domain.BankAccount, error) {
	return f.account, f.getErr
}

type fakeNotifier struct {
	failedCalls   int
	failedStatus  domain.PaymentStatus
	reportedCalls int
	reportedName  string
}

func (f *fakeNotifier) PaymentFailed(_, _ int64, status domain.PaymentStatus, _ string) {
	f.failedCalls++
	f.failedStatus = status
}

func (f *fakeNotifier) DepositReported(_, _ int64, depositorName string) {
	f.reportedCalls++
	f.reportedName = depositorName
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

type paymentsFixture struct {
	svc      *Service
	payments *fakePaymentRepo
	bookings *fakeBookingRepo
	accounts *fakeBankAccountRepo
	notifier *fakeNotifier
	now      time.Time
}

func newPaymentsFixture() *paymentsFixture {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	f := &paymentsFixture{
		payments: &fakePaymentRepo{
			payment: &domain.Payment{
				ID:              201,
				BookingID:       101,
				Amount:          37000,
				Method:          domain.PaymentMethodBankTransfer,
				Status:          domain.PaymentStatusPending,
				DepositDeadline: now.Add(24 * time.Hour),
			},
		},
		bookings: &fakeBookingRepo{
			booking: &domain.Booking{ID: 101, UserID: 42},
		},
		accounts: &fakeBankAccountRepo{
			account: &domain.BankAccount{
				ID:            1,
				BankName:      "국민은행",
				AccountNumber: "123-456-789012",
				AccountHolder: "칼갈이서비스",
				IsDefault:     true,
			},
		},
		notifier: &fakeNotifier{},
		now:      now,
	}

	f.svc = NewService(f.payments, f.bookings, f.accounts, f.notifier, &fakeClock{now: now}, nopLogger{})
	return f
}

func TestGetByBookingID_PendingIncludesTransferDetails(t *testing.T) {
	f := newPaymentsFixture()

	resp, err := f.svc.GetByBookingID(context.Background(), 101, 42)
	assert.NoError(t, err)

	assert.Equal(t, int64(201), resp.ID)
	assert.NotNil(t, resp.TransferTo)
	assert.Equal(t, "국민은행", resp.TransferTo.BankName)
	assert.Equal(t, "칼갈이서비스", resp.TransferTo.AccountHolder)
}

func TestGetByBookingID_ConfirmedOmitsTransferDetails(t *testing.T) {
	f := newPaymentsFixture()
	f.payments.payment.Status = domain.PaymentStatusConfirmed

	resp, err := f.svc.GetByBookingID(context.Background(), 101, 42)
	assert.NoError(t, err)
	assert.Nil(t, resp.TransferTo)
}

func TestGetByBookingID_NoDefaultAccountStillReturnsPayment(t *testing.T) {
	f := newPaymentsFixture()
	f.accounts.account = nil
	f.accounts.getErr = bankaccountRepo.ErrNoDefaultAccount

	resp, err := f.svc.GetByBookingID(context.Background(), 101, 42)
	assert.NoError(t, err)
	assert.Nil(t, resp.TransferTo)
}

func TestGetByBookingID_OtherUsersBooking(t *testing.T) {
	f := newPaymentsFixture()

	_, err := f.svc.GetByBookingID(context.Background(), 101, 777)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestReportDeposit_MarksReportedAndNotifies(t *testing.T) {
	f := newPaymentsFixture()

	resp, err := f.svc.ReportDeposit(context.Background(), 201, &models.ReportDepositRequest{
		UserID:        42,
		DepositorName: "홍길동",
	})
	assert.NoError(t, err)
	assert.NotNil(t, resp)

	assert.Equal(t, 1, f.payments.reportedCalls)
	assert.Equal(t, "홍길동", f.payments.reportedName)
	assert.Equal(t, 1, f.notifier.reportedCalls)
	assert.Equal(t, "홍길동", f.notifier.reportedName)
}

func TestReportDeposit_DeadlinePassed(t *testing.T) {
	f := newPaymentsFixture()
	f.payments.payment.DepositDeadline = f.now.Add(-time.Hour)

	_, err := f.svc.ReportDeposit(context.Background(), 201, &models.ReportDepositRequest{
		UserID:        42,
		DepositorName: "홍길동",
	})
	assert.ErrorIs(t, err, ErrDeadlinePassed)
	assert.Equal(t, 0, f.payments.reportedCalls)
}

func TestReportDeposit_NotPending(t *testing.T) {
	f := newPaymentsFixture()
	f.payments.payment.Status = domain.PaymentStatusConfirmed

	_, err := f.svc.ReportDeposit(context.Background(), 201, &models.ReportDepositRequest{
		UserID:        42,
		DepositorName: "홍길동",
	})
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestReportDeposit_RaceAgainstExpiration(t *testing.T) {
	f := newPaymentsFixture()
	f.payments.reportErr = paymentRepo.ErrStatusConflict

	_, err := f.svc.ReportDeposit(context.Background(), 201, &models.ReportDepositRequest{
		UserID:        42,
		DepositorName: "홍길동",
	})
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestReportDeposit_RequiresDepositorName(t *testing.T) {
	f := newPaymentsFixture()

	_, err := f.svc.ReportDeposit(context.Background(), 201, &models.ReportDepositRequest{UserID: 42})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReportDeposit_OtherUsersPayment(t *testing.T) {
	f := newPaymentsFixture()

	_, err := f.svc.ReportDeposit(context.Background(), 201, &models.ReportDepositRequest{
		UserID:        777,
		DepositorName: "홍길동",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestFail_MovesPendingToFailed(t *testing.T) {
	f := newPaymentsFixture()

	resp, err := f.svc.Fail(context.Background(), 201, &models.FailPaymentRequest{
		Status: "failed",
		Note:   "입금 미확인",
	})
	assert.NoError(t, err)
	assert.NotNil(t, resp)

	assert.Equal(t, 1, f.payments.failCalls)
	assert.Equal(t, domain.PaymentStatusFailed, f.payments.failedStatus)
	assert.Equal(t, "입금 미확인", f.payments.failedNote)
	assert.Equal(t, 1, f.notifier.failedCalls)
	assert.Equal(t, domain.PaymentStatusFailed, f.notifier.failedStatus)
}

func TestFail_RejectsNonTerminalTargets(t *testing.T) {
	f := newPaymentsFixture()

	for _, status := range []string{"pending", "confirmed", "expired", "cancelled", "bogus"} {
		t.Run(status, func(t *testing.T) {
			_, err := f.svc.Fail(context.Background(), 201, &models.FailPaymentRequest{Status: status})
			assert.ErrorIs(t, err, ErrInvalidStatus)
		})
	}
	assert.Equal(t, 0, f.payments.failCalls)
}

func TestFail_AlreadyTerminal(t *testing.T) {
	f := newPaymentsFixture()
	f.payments.failErr = paymentRepo.ErrStatusConflict

	_, err := f.svc.Fail(context.Background(), 201, &models.FailPaymentRequest{Status: "rejected"})
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestList_InvalidStatusFilter(t *testing.T) {
	f := newPaymentsFixture()

	bad := "unknown"
	_, err := f.svc.List(context.Background(), &models.ListPaymentsRequest{Status: &bad})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestList_ReturnsPayments(t *testing.T) {
	f := newPaymentsFixture()
	f.payments.listed = []*domain.Payment{
		{ID: 1, BookingID: 10, Status: domain.PaymentStatusPending},
		{ID: 2, BookingID: 11, Status: domain.PaymentStatusConfirmed},
	}

	resp, err := f.svc.List(context.Background(), &models.ListPaymentsRequest{})
	assert.NoError(t, err)
	assert.Len(t, resp.Payments, 2)
}
