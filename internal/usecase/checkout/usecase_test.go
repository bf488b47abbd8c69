package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	couponRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/coupon"
	insuranceRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/insurance"
	"github.com/m04kA/KS-SharpeningService/pkg/ptr"
	"github.com/m04kA/KS-SharpeningService/pkg/types"
)

type fakeBookingRepo struct {
	created      *domain.Booking
	countByUser  int64
	countErr     error
	countedCalls int
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	copied := *b
	copied.ID = 101
	f.created = &copied
	return &copied, nil
}

func (f *fakeBookingRepo) CountByUserID(_ context.Context, _ int64) (int64, error) {
	f.countedCalls++
	return f.countByUser, f.countErr
}

type fakePaymentRepo struct {
	created *domain.Payment
}

func (f *fakePaymentRepo) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	copied := *p
	copied.ID = 201
	f.created = &copied
	return &copied, nil
}

type fakeCatalogRepo struct {
	knifeTypes map[int64]*domain.KnifeType
}

func (f *fakeCatalogRepo) GetByIDs(_ context.Context, _ []int64) (map[int64]*domain.KnifeType, error) {
	return f.knifeTypes, nil
}

type fakeCouponRepo struct {
	userCoupon *domain.UserCoupon
	getErr     error

	markUsedErr         error
	markedID            int64
	markedBookingID     int64
	markedDiscount      int64
	markedOriginalOrder int64
}

func (f *fakeCouponRepo) GetUserCouponByID(_ context.Context, _ int64) (*domain.UserCoupon, error) {
	return f.userCoupon, f.getErr
}

func (f *fakeCouponRepo) MarkUsed(_ context.Context, id, bookingID, discountAmount, originalOrderAmount int64, _ time.Time) error {
	f.markedID = id
	f.markedBookingID = bookingID
	f.markedDiscount = discountAmount
	f.markedOriginalOrder = originalOrderAmount
	return f.markUsedErr
}

type fakeInsuranceRepo struct {
	product    *domain.InsuranceProduct
	productErr error
	policy     *domain.UserInsurance
}

func (f *fakeInsuranceRepo) GetActiveProduct(_ context.Context) (*domain.InsuranceProduct, error) {
	return f.product, f.productErr
}

func (f *fakeInsuranceRepo) CreatePolicy(_ context.Context, p *domain.UserInsurance) (*domain.UserInsurance, error) {
	copied := *p
	copied.ID = 301
	f.policy = &copied
	return &copied, nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeNotifier struct {
	bookingID   int64
	userID      int64
	totalAmount int64
	calls       int
}

func (f *fakeNotifier) BookingCreated(bookingID, userID int64, totalAmount int64) {
	f.bookingID = bookingID
	f.userID = userID
	f.totalAmount = totalAmount
	f.calls++
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

type checkoutFixture struct {
	uc        *UseCase
	bookings  *fakeBookingRepo
	payments  *fakePaymentRepo
	catalog   *fakeCatalogRepo
	coupons   *fakeCouponRepo
	insurance *fakeInsuranceRepo
	notifier  *fakeNotifier
	now       time.Time
}

func newCheckoutFixture() *checkoutFixture {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	f := &checkoutFixture{
		bookings: &fakeBookingRepo{},
		payments: &fakePaymentRepo{},
		catalog: &fakeCatalogRepo{
			knifeTypes: map[int64]*domain.KnifeType{
				1: {ID: 1, Name: "식도", MarketPrice: 10000, DiscountPrice: 8000},
				2: {ID: 2, Name: "회칼", MarketPrice: 20000},
			},
		},
		coupons: &fakeCouponRepo{},
		insurance: &fakeInsuranceRepo{
			product: &domain.InsuranceProduct{
				ID:             7,
				Name:           "칼 보험",
				PremiumPerUnit: 500,
				CoverageAmount: 100000,
				IsActive:       true,
			},
		},
		notifier: &fakeNotifier{},
		now:      now,
	}

	f.uc = NewUseCase(
		f.bookings,
		f.payments,
		f.catalog,
		f.coupons,
		f.insurance,
		&fakeTxManager{},
		f.notifier,
		24,
		nopLogger{},
	)
	f.uc.timeProvider = &fakeClock{now: now}

	return f
}

func (f *checkoutFixture) validRequest() *Request {
	return &Request{
		UserID:      42,
		BookingDate: f.now.AddDate(0, 0, 3),
		BookingTime: types.TimeString("14:00"),
		Items: []ItemRequest{
			{KnifeTypeID: 1, Quantity: 2, Insured: true},
			{KnifeTypeID: 2, Quantity: 1},
		},
	}
}

func (f *checkoutFixture) issueCoupon(coupon *domain.Coupon) {
	f.coupons.userCoupon = &domain.UserCoupon{
		ID:        55,
		CouponID:  coupon.ID,
		UserID:    42,
		Code:      "WELCOME-1234",
		IssuedAt:  f.now.AddDate(0, 0, -1),
		ExpiresAt: f.now.AddDate(0, 0, 30),
		Coupon:    coupon,
	}
}

func TestExecute_ComposesTotalsAndCreatesRecords(t *testing.T) {
	f := newCheckoutFixture()

	resp, err := f.uc.Execute(context.Background(), f.validRequest())
	assert.NoError(t, err)

	// 2x8000 + 1x20000 service, 2x500 premium on the insured line
	assert.Equal(t, int64(36000), resp.ServiceAmount)
	assert.Equal(t, int64(1000), resp.InsuranceAmount)
	assert.Equal(t, int64(0), resp.DiscountAmount)
	assert.Equal(t, int64(37000), resp.TotalAmount)

	assert.Equal(t, int64(101), resp.BookingID)
	assert.Equal(t, string(domain.BookingStatusPending), resp.Status)
	assert.Equal(t, "접수", resp.StatusLabel)
	assert.Len(t, resp.Items, 2)

	assert.NotNil(t, f.payments.created)
	assert.Equal(t, int64(101), f.payments.created.BookingID)
	assert.Equal(t, int64(37000), f.payments.created.Amount)
	assert.Equal(t, domain.PaymentStatusPending, f.payments.created.Status)
	assert.Equal(t, f.now.Add(24*time.Hour), f.payments.created.DepositDeadline)

	assert.Equal(t, 1, f.notifier.calls)
	assert.Equal(t, int64(101), f.notifier.bookingID)
	assert.Equal(t, int64(42), f.notifier.userID)
	assert.Equal(t, int64(37000), f.notifier.totalAmount)
}

func TestExecute_InsuredItemsCreatePolicy(t *testing.T) {
	f := newCheckoutFixture()
	req := f.validRequest()

	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)

	assert.NotNil(t, f.insurance.policy)
	assert.Equal(t, int64(42), f.insurance.policy.UserID)
	assert.Equal(t, int64(7), f.insurance.policy.ProductID)
	assert.Equal(t, int64(100000), f.insurance.policy.CoverageAmount)
	assert.Equal(t, f.now, f.insurance.policy.StartDate)
	assert.Equal(t, req.BookingDate.AddDate(0, 1, 0), f.insurance.policy.EndDate)
	assert.Equal(t, domain.PolicyStatusActive, f.insurance.policy.Status)
}

func TestExecute_NoPolicyWithoutInsuredItems(t *testing.T) {
	f := newCheckoutFixture()
	f.insurance.productErr = insuranceRepo.ErrProductNotFound

	req := f.validRequest()
	req.Items = []ItemRequest{{KnifeTypeID: 2, Quantity: 1}}

	resp, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), resp.InsuranceAmount)
	assert.Nil(t, f.insurance.policy)
}

func TestExecute_PercentageCouponDiscountsPreDiscountTotal(t *testing.T) {
	f := newCheckoutFixture()
	f.issueCoupon(&domain.Coupon{
		ID:                9,
		Name:              "10% 할인",
		DiscountType:      domain.DiscountTypePercentage,
		DiscountValue:     10,
		MinOrderAmount:    10000,
		MaxDiscountAmount: ptr.Ptr(int64(3000)),
	})

	req := f.validRequest()
	req.UserCouponID = ptr.Ptr(int64(55))

	resp, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)

	// 10% of 37000 is 3700, capped at 3000
	assert.Equal(t, int64(3000), resp.DiscountAmount)
	assert.Equal(t, int64(34000), resp.TotalAmount)

	assert.Equal(t, int64(55), f.coupons.markedID)
	assert.Equal(t, int64(101), f.coupons.markedBookingID)
	assert.Equal(t, int64(3000), f.coupons.markedDiscount)
	assert.Equal(t, int64(37000), f.coupons.markedOriginalOrder)

	// платеж фиксирует ту же сумму, что показана клиенту
	assert.Equal(t, int64(34000), f.payments.created.Amount)
	assert.Equal(t, int64(3000), f.payments.created.DiscountAmount)
}

func TestExecute_CouponMarkUsedRace(t *testing.T) {
	f := newCheckoutFixture()
	f.issueCoupon(&domain.Coupon{
		ID:            9,
		DiscountType:  domain.DiscountTypeFixedAmount,
		DiscountValue: 2000,
	})
	f.coupons.markUsedErr = couponRepo.ErrAlreadyUsed

	req := f.validRequest()
	req.UserCouponID = ptr.Ptr(int64(55))

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCouponAlreadyUsed)
}

func TestExecute_CouponAlreadyUsed(t *testing.T) {
	f := newCheckoutFixture()
	f.issueCoupon(&domain.Coupon{ID: 9, DiscountType: domain.DiscountTypeFixedAmount, DiscountValue: 2000})
	f.coupons.userCoupon.IsUsed = true

	req := f.validRequest()
	req.UserCouponID = ptr.Ptr(int64(55))

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCouponAlreadyUsed)
}

func TestExecute_ExpiredCoupon(t *testing.T) {
	f := newCheckoutFixture()
	f.issueCoupon(&domain.Coupon{ID: 9, DiscountType: domain.DiscountTypeFixedAmount, DiscountValue: 2000})
	f.coupons.userCoupon.ExpiresAt = f.now.AddDate(0, 0, -1)

	req := f.validRequest()
	req.UserCouponID = ptr.Ptr(int64(55))

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCouponAlreadyUsed)
}

func TestExecute_CouponBelowMinOrderAmount(t *testing.T) {
	f := newCheckoutFixture()
	f.issueCoupon(&domain.Coupon{
		ID:             9,
		DiscountType:   domain.DiscountTypeFixedAmount,
		DiscountValue:  2000,
		MinOrderAmount: 50000,
	})

	req := f.validRequest()
	req.UserCouponID = ptr.Ptr(int64(55))

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCouponNotApplicable)
	assert.Nil(t, f.bookings.created)
}

func TestExecute_FirstOrderOnlyCouponWithPriorBookings(t *testing.T) {
	f := newCheckoutFixture()
	f.issueCoupon(&domain.Coupon{
		ID:               9,
		DiscountType:     domain.DiscountTypeFixedAmount,
		DiscountValue:    2000,
		IsFirstOrderOnly: true,
	})
	f.bookings.countByUser = 3

	req := f.validRequest()
	req.UserCouponID = ptr.Ptr(int64(55))

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCouponNotApplicable)
	assert.Equal(t, 1, f.bookings.countedCalls)
}

func TestExecute_CouponOwnedByAnotherUser(t *testing.T) {
	f := newCheckoutFixture()
	f.issueCoupon(&domain.Coupon{ID: 9, DiscountType: domain.DiscountTypeFixedAmount, DiscountValue: 2000})
	f.coupons.userCoupon.UserID = 777

	req := f.validRequest()
	req.UserCouponID = ptr.Ptr(int64(55))

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCouponNotOwned)
}

func TestExecute_CouponNotFound(t *testing.T) {
	f := newCheckoutFixture()
	f.coupons.getErr = couponRepo.ErrUserCouponNotFound

	req := f.validRequest()
	req.UserCouponID = ptr.Ptr(int64(999))

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestExecute_UnknownKnifeType(t *testing.T) {
	f := newCheckoutFixture()

	req := f.validRequest()
	req.Items = append(req.Items, ItemRequest{KnifeTypeID: 99, Quantity: 1})

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrKnifeTypeNotFound)
}

func TestExecute_InsuranceRequestedButUnavailable(t *testing.T) {
	f := newCheckoutFixture()
	f.insurance.product = nil
	f.insurance.productErr = insuranceRepo.ErrProductNotFound

	_, err := f.uc.Execute(context.Background(), f.validRequest())
	assert.ErrorIs(t, err, ErrInsuranceUnavailable)
}

func TestExecute_BookingDateInThePast(t *testing.T) {
	f := newCheckoutFixture()

	req := f.validRequest()
	req.BookingDate = f.now.AddDate(0, 0, -1)

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_ValidationRejectsBadInput(t *testing.T) {
	f := newCheckoutFixture()

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"no items", func(r *Request) { r.Items = nil }},
		{"zero quantity", func(r *Request) { r.Items[0].Quantity = 0 }},
		{"duplicate knife type", func(r *Request) { r.Items[1].KnifeTypeID = r.Items[0].KnifeTypeID }},
		{"missing user", func(r *Request) { r.UserID = 0 }},
		{"bad time", func(r *Request) { r.BookingTime = types.TimeString("25:99") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := f.validRequest()
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
