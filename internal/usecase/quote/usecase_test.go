package quote

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	couponRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/coupon"
	insuranceRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/insurance"
	"github.com/m04kA/KS-SharpeningService/pkg/ptr"
)

type fakeCatalogRepo struct {
	knifeTypes map[int64]*domain.KnifeType
}

func (f *fakeCatalogRepo) GetByIDs(_ context.Context, _ []int64) (map[int64]*domain.KnifeType, error) {
	return f.knifeTypes, nil
}

type fakeCouponRepo struct {
	userCoupon *domain.UserCoupon
	getErr     error
}

func (f *fakeCouponRepo) GetUserCouponByID(_ context.Context, _ int64) (*domain.UserCoupon, error) {
	return f.userCoupon, f.getErr
}

type fakeInsuranceRepo struct {
	product    *domain.InsuranceProduct
	productErr error
	calls      int
}

func (f *fakeInsuranceRepo) GetActiveProduct(_ context.Context) (*domain.InsuranceProduct, error) {
	f.calls++
	return f.product, f.productErr
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

type quoteFixture struct {
	uc        *UseCase
	coupons   *fakeCouponRepo
	insurance *fakeInsuranceRepo
	now       time.Time
}

func newQuoteFixture() *quoteFixture {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	f := &quoteFixture{
		coupons: &fakeCouponRepo{},
		insurance: &fakeInsuranceRepo{
			product: &domain.InsuranceProduct{ID: 7, PremiumPerUnit: 500, CoverageAmount: 100000, IsActive: true},
		},
		now: now,
	}

	catalog := &fakeCatalogRepo{
		knifeTypes: map[int64]*domain.KnifeType{
			1: {ID: 1, Name: "식도", MarketPrice: 10000, DiscountPrice: 8000},
			2: {ID: 2, Name: "회칼", MarketPrice: 20000},
		},
	}

	f.uc = NewUseCase(catalog, f.coupons, f.insurance, nopLogger{})
	f.uc.timeProvider = &fakeClock{now: now}
	return f
}

func (f *quoteFixture) validRequest() *Request {
	return &Request{
		UserID: 42,
		Items: []ItemRequest{
			{KnifeTypeID: 1, Quantity: 2, Insured: true},
			{KnifeTypeID: 2, Quantity: 1},
		},
	}
}

func TestExecute_QuoteWithoutCoupon(t *testing.T) {
	f := newQuoteFixture()

	resp, err := f.uc.Execute(context.Background(), f.validRequest())
	assert.NoError(t, err)

	// Скидочная цена берется вместо рыночной
	assert.Equal(t, int64(36000), resp.ServiceAmount)
	assert.Equal(t, int64(1000), resp.InsuranceAmount)
	assert.Equal(t, int64(0), resp.DiscountAmount)
	assert.Equal(t, int64(37000), resp.TotalAmount)

	assert.Len(t, resp.Items, 2)
	assert.Equal(t, int64(8000), resp.Items[0].UnitPrice)
	assert.Equal(t, int64(16000), resp.Items[0].TotalPrice)
}

func TestExecute_UninsuredOrderSkipsProductLookup(t *testing.T) {
	f := newQuoteFixture()

	req := f.validRequest()
	req.Items = []ItemRequest{{KnifeTypeID: 2, Quantity: 1}}

	resp, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)

	assert.Equal(t, int64(0), resp.InsuranceAmount)
	assert.Equal(t, 0, f.insurance.calls)
}

func TestExecute_QuoteWithCouponMatchesCheckoutComposition(t *testing.T) {
	f := newQuoteFixture()
	f.coupons.userCoupon = &domain.UserCoupon{
		ID:        55,
		UserID:    42,
		ExpiresAt: f.now.AddDate(0, 0, 30),
		Coupon: &domain.Coupon{
			ID:                9,
			DiscountType:      domain.DiscountTypePercentage,
			DiscountValue:     10,
			MaxDiscountAmount: ptr.Ptr(int64(3000)),
		},
	}

	req := f.validRequest()
	req.UserCouponID = ptr.Ptr(int64(55))

	resp, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)

	// Скидка считается от суммы до скидки: 10% от 37000, кап 3000
	assert.Equal(t, int64(3000), resp.DiscountAmount)
	assert.Equal(t, int64(34000), resp.TotalAmount)
}

func TestExecute_CouponBelowMinimumRejected(t *testing.T) {
	f := newQuoteFixture()
	f.coupons.userCoupon = &domain.UserCoupon{
		ID:        55,
		UserID:    42,
		ExpiresAt: f.now.AddDate(0, 0, 30),
		Coupon: &domain.Coupon{
			ID:             9,
			DiscountType:   domain.DiscountTypeFixedAmount,
			DiscountValue:  2000,
			MinOrderAmount: 50000,
		},
	}

	req := f.validRequest()
	req.UserCouponID = ptr.Ptr(int64(55))

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCouponNotApplicable)
}

func TestExecute_UsedCouponRejected(t *testing.T) {
	f := newQuoteFixture()
	f.coupons.userCoupon = &domain.UserCoupon{
		ID:        55,
		UserID:    42,
		IsUsed:    true,
		ExpiresAt: f.now.AddDate(0, 0, 30),
		Coupon:    &domain.Coupon{ID: 9, DiscountType: domain.DiscountTypeFixedAmount, DiscountValue: 2000},
	}

	req := f.validRequest()
	req.UserCouponID = ptr.Ptr(int64(55))

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCouponAlreadyUsed)
}

func TestExecute_ForeignCouponRejected(t *testing.T) {
	f := newQuoteFixture()
	f.coupons.userCoupon = &domain.UserCoupon{
		ID:        55,
		UserID:    777,
		ExpiresAt: f.now.AddDate(0, 0, 30),
		Coupon:    &domain.Coupon{ID: 9, DiscountType: domain.DiscountTypeFixedAmount, DiscountValue: 2000},
	}

	req := f.validRequest()
	req.UserCouponID = ptr.Ptr(int64(55))

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCouponNotOwned)
}

func TestExecute_UnknownCoupon(t *testing.T) {
	f := newQuoteFixture()
	f.coupons.getErr = couponRepo.ErrUserCouponNotFound

	req := f.validRequest()
	req.UserCouponID = ptr.Ptr(int64(999))

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCouponNotFound)
}

func TestExecute_UnknownKnifeType(t *testing.T) {
	f := newQuoteFixture()

	req := f.validRequest()
	req.Items[0].KnifeTypeID = 99

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrKnifeTypeNotFound)
}

func TestExecute_InsuranceUnavailable(t *testing.T) {
	f := newQuoteFixture()
	f.insurance.product = nil
	f.insurance.productErr = insuranceRepo.ErrProductNotFound

	_, err := f.uc.Execute(context.Background(), f.validRequest())
	assert.ErrorIs(t, err, ErrInsuranceUnavailable)
}

func TestExecute_ValidationRejectsBadInput(t *testing.T) {
	f := newQuoteFixture()

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"no items", func(r *Request) { r.Items = nil }},
		{"zero quantity", func(r *Request) { r.Items[0].Quantity = 0 }},
		{"missing user", func(r *Request) { r.UserID = 0 }},
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
