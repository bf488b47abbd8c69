package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	couponRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/coupon"
	insuranceRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/insurance"
)

// UseCase use case оформления заказа на заточку
type UseCase struct {
	bookingRepo          BookingRepository
	paymentRepo          PaymentRepository
	catalogRepo          CatalogRepository
	couponRepo           CouponRepository
	insuranceRepo        InsuranceRepository
	txManager            TransactionManager
	notifier             Notifier
	timeProvider         TimeProvider
	depositDeadlineHours int
	logger               Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	catalogRepo CatalogRepository,
	couponRepo CouponRepository,
	insuranceRepo InsuranceRepository,
	txManager TransactionManager,
	notifier Notifier,
	depositDeadlineHours int,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:          bookingRepo,
		paymentRepo:          paymentRepo,
		catalogRepo:          catalogRepo,
		couponRepo:           couponRepo,
		insuranceRepo:        insuranceRepo,
		txManager:            txManager,
		notifier:             notifier,
		timeProvider:         &RealTimeProvider{},
		depositDeadlineHours: depositDeadlineHours,
		logger:               logger,
	}
}

// Execute выполняет оформление заказа.
// Ценообразование и запись в базу используют один и тот же composeTotals:
// клиент платит ровно ту сумму, которую видел в предпросмотре.
// Списание купона, создание бронирования и платежа выполняются в одной
// сериализуемой транзакции - частичное оформление снаружи не наблюдаемо.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("Checkout: user=%d, items=%d, date=%s %s",
		req.UserID, len(req.Items), req.BookingDate.Format(domain.DateFormat), req.BookingTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("Checkout: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateDate(req.BookingDate, now); err != nil {
		uc.logger.Warn("Checkout: date in the past: %s", req.BookingDate.Format(domain.DateFormat))
		return nil, err
	}

	// 2. Загружаем каталог по позициям заказа
	ids := make([]int64, 0, len(req.Items))
	for _, item := range req.Items {
		ids = append(ids, item.KnifeTypeID)
	}

	knifeTypes, err := uc.catalogRepo.GetByIDs(ctx, ids)
	if err != nil {
		uc.logger.Error("Checkout: failed to load catalog: %v", err)
		return nil, fmt.Errorf("%w: failed to load catalog: %v", ErrInternal, err)
	}

	pricingItems := make([]domain.PricingItem, 0, len(req.Items))
	insuredRequested := false
	for _, item := range req.Items {
		kt, ok := knifeTypes[item.KnifeTypeID]
		if !ok {
			uc.logger.Warn("Checkout: knife type id=%d not found", item.KnifeTypeID)
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

	// 3. Премия страхового продукта нужна только при застрахованных позициях
	var product *domain.InsuranceProduct
	var premiumPerUnit int64
	if insuredRequested {
		product, err = uc.insuranceRepo.GetActiveProduct(ctx)
		if err != nil {
			if errors.Is(err, insuranceRepo.ErrProductNotFound) {
				uc.logger.Warn("Checkout: insurance requested but no active product")
				return nil, ErrInsuranceUnavailable
			}
			return nil, fmt.Errorf("%w: failed to get insurance product: %v", ErrInternal, err)
		}
		premiumPerUnit = product.PremiumPerUnit
	}

	var (
		booking *domain.Booking
		payment *domain.Payment
		totals  domain.OrderTotals
	)

	// 4. Сериализуемая транзакция: купон -> бронирование -> платеж
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Проверяем купон и считаем итоги
		var userCoupon *domain.UserCoupon
		var coupon *domain.Coupon
		if req.UserCouponID != nil {
			userCoupon, coupon, err = uc.loadCoupon(txCtx, *req.UserCouponID, req.UserID, pricingItems, premiumPerUnit, now)
			if err != nil {
				return err
			}
		}

		totals = domain.ComposeTotals(pricingItems, premiumPerUnit, coupon)

		// 4.2. Создаем бронирование с денормализацией позиций
		totalQuantity := 0
		items := make([]domain.BookingItem, 0, len(pricingItems))
		for _, pi := range pricingItems {
			totalQuantity += pi.Quantity
			items = append(items, domain.BookingItem{
				KnifeTypeID:   pi.KnifeTypeID,
				KnifeTypeName: pi.KnifeTypeName,
				Quantity:      pi.Quantity,
				UnitPrice:     pi.UnitPrice,
				TotalPrice:    pi.LineTotal(),
				Insured:       pi.Insured,
			})
		}

		created, err := uc.bookingRepo.Create(txCtx, &domain.Booking{
			UserID:              req.UserID,
			BookingDate:         req.BookingDate,
			BookingTime:         req.BookingTime,
			Status:              domain.BookingStatusPending,
			TotalQuantity:       totalQuantity,
			TotalAmount:         totals.TotalAmount,
			SpecialInstructions: req.SpecialInstructions,
			Items:               items,
		})
		if err != nil {
			uc.logger.Error("Checkout: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}
		booking = created

		// 4.3. Списываем купон. Guard по is_used закрывает гонку
		// двух одновременных оформлений с одним купоном.
		if userCoupon != nil {
			preDiscount := totals.ServiceAmount + totals.InsuranceAmount
			err = uc.couponRepo.MarkUsed(txCtx, userCoupon.ID, booking.ID, totals.DiscountAmount, preDiscount, now)
			if err != nil {
				if errors.Is(err, couponRepo.ErrAlreadyUsed) {
					uc.logger.Warn("Checkout: coupon id=%d lost the race", userCoupon.ID)
					return ErrCouponAlreadyUsed
				}
				return fmt.Errorf("%w: failed to mark coupon used: %v", ErrInternal, err)
			}
		}

		// 4.4. Полис на застрахованные позиции
		if insuredRequested {
			_, err = uc.insuranceRepo.CreatePolicy(txCtx, &domain.UserInsurance{
				UserID:         req.UserID,
				ProductID:      product.ID,
				CoverageAmount: product.CoverageAmount,
				StartDate:      now,
				EndDate:        req.BookingDate.AddDate(0, 1, 0),
				Status:         domain.PolicyStatusActive,
			})
			if err != nil {
				return fmt.Errorf("%w: failed to create policy: %v", ErrInternal, err)
			}
		}

		// 4.5. Создаем платеж со сроком ожидания депозита
		createdPayment, err := uc.paymentRepo.Create(txCtx, &domain.Payment{
			BookingID:       booking.ID,
			Amount:          totals.TotalAmount,
			DiscountAmount:  totals.DiscountAmount,
			InsuranceAmount: totals.InsuranceAmount,
			Method:          domain.PaymentMethodBankTransfer,
			Status:          domain.PaymentStatusPending,
			DepositDeadline: now.Add(time.Duration(uc.depositDeadlineHours) * time.Hour),
		})
		if err != nil {
			uc.logger.Error("Checkout: failed to create payment: %v", err)
			return fmt.Errorf("%w: failed to create payment: %v", ErrInternal, err)
		}
		payment = createdPayment

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.BookingCreated(booking.ID, booking.UserID, totals.TotalAmount)
	uc.logger.Info("Checkout: booking id=%d created, payment id=%d, total=%d",
		booking.ID, payment.ID, totals.TotalAmount)

	return buildResponse(booking, payment, totals), nil
}

// loadCoupon загружает купон и проверяет его применимость к заказу
func (uc *UseCase) loadCoupon(
	ctx context.Context,
	userCouponID, userID int64,
	items []domain.PricingItem,
	premiumPerUnit int64,
	now time.Time,
) (*domain.UserCoupon, *domain.Coupon, error) {
	userCoupon, err := uc.couponRepo.GetUserCouponByID(ctx, userCouponID)
	if err != nil {
		if errors.Is(err, couponRepo.ErrUserCouponNotFound) {
			return nil, nil, ErrCouponNotFound
		}
		return nil, nil, fmt.Errorf("%w: failed to get coupon: %v", ErrInternal, err)
	}

	if userCoupon.UserID != userID {
		uc.logger.Warn("Checkout: coupon id=%d belongs to user=%d, not user=%d",
			userCouponID, userCoupon.UserID, userID)
		return nil, nil, ErrCouponNotOwned
	}
	if !userCoupon.IsUsable(now) {
		return nil, nil, ErrCouponAlreadyUsed
	}

	coupon := userCoupon.Coupon
	if coupon == nil {
		return nil, nil, fmt.Errorf("%w: coupon template missing for user coupon id=%d", ErrInternal, userCouponID)
	}

	// Ниже минимальной суммы купон отклоняется, а не обнуляется молча
	preDiscount := domain.ComposeTotals(items, premiumPerUnit, nil).TotalAmount
	if !coupon.AppliesTo(preDiscount) {
		uc.logger.Warn("Checkout: order amount %d below coupon min %d", preDiscount, coupon.MinOrderAmount)
		return nil, nil, ErrCouponNotApplicable
	}

	if coupon.IsFirstOrderOnly {
		count, err := uc.bookingRepo.CountByUserID(ctx, userID)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
		}
		if count > 0 {
			return nil, nil, ErrCouponNotApplicable
		}
	}

	return userCoupon, coupon, nil
}

func buildResponse(booking *domain.Booking, payment *domain.Payment, totals domain.OrderTotals) *Response {
	resp := &Response{
		BookingID:       booking.ID,
		Status:          string(booking.Status),
		StatusLabel:     booking.Status.Label(),
		BookingDate:     booking.BookingDate.Format(domain.DateFormat),
		BookingTime:     booking.BookingTime.String(),
		Items:           make([]ItemResponse, 0, len(booking.Items)),
		ServiceAmount:   totals.ServiceAmount,
		InsuranceAmount: totals.InsuranceAmount,
		DiscountAmount:  totals.DiscountAmount,
		TotalAmount:     totals.TotalAmount,
		PaymentID:       payment.ID,
		PaymentStatus:   string(payment.Status),
		DepositDeadline: payment.DepositDeadline.Format(time.RFC3339),
	}

	for _, item := range booking.Items {
		resp.Items = append(resp.Items, ItemResponse{
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
