package quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	couponRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/coupon"
	insuranceRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/insurance"
)

// UseCase use case предварительного расчета стоимости заказа.
// Ничего не пишет: тот же composeTotals вызывается при оформлении,
// поэтому повторный расчет с теми же входными данными дает те же суммы.
type UseCase struct {
	catalogRepo   CatalogRepository
	couponRepo    CouponRepository
	insuranceRepo InsuranceRepository
	timeProvider  TimeProvider
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalogRepo CatalogRepository,
	couponRepo CouponRepository,
	insuranceRepo InsuranceRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalogRepo:   catalogRepo,
		couponRepo:    couponRepo,
		insuranceRepo: insuranceRepo,
		timeProvider:  &RealTimeProvider{},
		logger:        logger,
	}
}

// Execute выполняет расчет стоимости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Quote: validation failed: %v", err)
		return nil, err
	}

	ids := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.KnifeTypeID)
	}

	knifeTypes, err := uc.catalogRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("Quote: failed to load catalog: %v", err)
		return nil, fmt.Errorf("%w: failed to load catalog: %v", ErrInternal, err)
	}

	pricingItems := make([]domain.PricingItem, 0, len(req.Items))
	insuredRequested := false
	for _, item := range req.Items {
		kt, ok := knifeTypes[item.KnifeTypeID]
		if !ok {
			return nil, ErrKnifeTypeNotFound
		}
		if item.Insured {
			insuredRequested = true
		}
		pricingItems = append(pricingItems, domain.PricingItem{
			KnifeTypeID:   kt.ID,
			KnifeTypeName: kt.Name,
			Quantity:      item.Quantity,
			UnitPrice:     kt.Price(),
			Insured:       item.Insured,
		})
	}

	var premiumPerUnit int64
	if insuredRequested {
		product, err := uc.insuranceRepo.GetActiveProduct(ctx)
		if err != nil {
			if errors.Is(err, insuranceRepo.ErrProductNotFound) {
				return nil, ErrInsuranceUnavailable
			}
			return nil, fmt.Errorf("%w: failed to get insurance product: %v", ErrInternal, err)
		}
		premiumPerUnit = product.PremiumPerUnit
	}

	var coupon *domain.Coupon
	if req.UserCouponID != nil {
		coupon, err = uc.loadCoupon(ctx, *req.UserCouponID, req.UserID, pricingItems, premiumPerUnit)
		if err != nil {
			return nil, err
		}
	}

	totals := domain.ComposeTotals(pricingItems, premiumPerUnit, coupon)

	resp := &Response{
		Items:           make([]ItemResponse, 0, len(pricingItems)),
		ServiceAmount:   totals.ServiceAmount,
		InsuranceAmount: totals.InsuranceAmount,
		DiscountAmount:  totals.DiscountAmount,
		TotalAmount:     totals.TotalAmount,
	}
	for _, pi := range pricingItems {
		resp.Items = append(resp.Items, ItemResponse{
			KnifeTypeID:   pi.KnifeTypeID,
			KnifeTypeName: pi.KnifeTypeName,
			Quantity:      pi.Quantity,
			UnitPrice:     pi.UnitPrice,
			TotalPrice:    pi.LineTotal(),
			Insured:       pi.Insured,
		})
	}

	return resp, nil
}

// loadCoupon проверяет применимость купона к рассчитываемому заказу
func (uc *UseCase) loadCoupon(
	ctx context.Context,
	userCouponID, userID int64,
	items []domain.PricingItem,
	premiumPerUnit int64,
) (*domain.Coupon, error) {
	userCoupon, err := uc.couponRepo.GetUserCouponByID(ctx, userCouponID)
	if err != nil {
		if errors.Is(err, couponRepo.ErrUserCouponNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("%w: failed to get coupon: %v", ErrInternal, err)
	}

	if userCoupon.UserID != userID {
		return nil, ErrCouponNotOwned
	}
	if !userCoupon.IsUsable(uc.timeProvider.Now()) {
		return nil, ErrCouponAlreadyUsed
	}
	if userCoupon.Coupon == nil {
		return nil, fmt.Errorf("%w: coupon template missing for user coupon id=%d", ErrInternal, userCouponID)
	}

	// Ниже минимальной суммы купон отклоняется с отдельной ошибкой
	preDiscount := domain.ComposeTotals(items, premiumPerUnit, nil).TotalAmount
	if !userCoupon.Coupon.AppliesTo(preDiscount) {
		return nil, ErrCouponNotApplicable
	}

	return userCoupon.Coupon, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}
	for _, item := range req.Items {
		if item.KnifeTypeID <= 0 {
			return fmt.Errorf("%w: knifeTypeID must be positive", ErrInvalidInput)
		}
		if item.Quantity < domain.MinItemQuantity || item.Quantity > domain.MaxItemQuantity {
			return fmt.Errorf("%w: quantity must be between %d and %d",
				ErrInvalidInput, domain.MinItemQuantity, domain.MaxItemQuantity)
		}
	}
	return nil
}
