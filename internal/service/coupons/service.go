package coupons

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	couponRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/coupon"
	"github.com/m04kA/KS-SharpeningService/internal/service/coupons/models"
	"github.com/m04kA/KS-SharpeningService/pkg/ptr"
)

// Service сервис для работы с купонами
type Service struct {
	couponRepo  CouponRepository
	bookingRepo BookingRepository
	timer       TimeProvider
	logger      Logger
}

// NewService создает новый экземпляр сервиса купонов
func NewService(
	couponRepo CouponRepository,
	bookingRepo BookingRepository,
	timer TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		couponRepo:  couponRepo,
		bookingRepo: bookingRepo,
		timer:       timer,
		logger:      logger,
	}
}

// Issue выдает пользователю экземпляр купона (админ).
// Код уникальный, срок действия считается от момента выдачи.
func (s *Service) Issue(ctx context.Context, req *models.IssueCouponRequest) (*models.UserCouponResponse, error) {
	coupon, err := s.couponRepo.GetCouponByID(ctx, req.CouponID)
	if err != nil {
		if errors.Is(err, couponRepo.ErrCouponNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("%w: Issue - get coupon: %v", ErrInternal, err)
	}

	now := s.timer.Now()
	userCoupon := &domain.UserCoupon{
		CouponID:  coupon.ID,
		UserID:    req.UserID,
		Code:      generateCode(),
		IssuedAt:  now,
		ExpiresAt: now.AddDate(0, 0, coupon.ValidDays),
	}

	issued, err := s.couponRepo.IssueUserCoupon(ctx, userCoupon)
	if err != nil {
		return nil, fmt.Errorf("%w: Issue - create user coupon: %v", ErrInternal, err)
	}
	issued.Coupon = coupon

	s.logger.Info("Issue: coupon=%d issued to user=%d as %s", coupon.ID, req.UserID, issued.Code)
	return models.FromDomainUserCoupon(issued), nil
}

// GetUserCoupons возвращает неиспользованные действующие купоны пользователя.
// С orderAmount список дополнительно фильтруется по применимости:
// купоны с минимальной суммой выше заказа и first-order-only купоны
// при наличии прошлых заказов не попадают в ответ.
func (s *Service) GetUserCoupons(ctx context.Context, req *models.GetUserCouponsRequest) (*models.UserCouponListResponse, error) {
	now := s.timer.Now()

	userCoupons, err := s.couponRepo.GetUnusedByUserID(ctx, req.UserID, now)
	if err != nil {
		s.logger.Error("GetUserCoupons: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserCoupons - repository error: %v", ErrInternal, err)
	}

	resp := &models.UserCouponListResponse{
		Coupons: make([]models.UserCouponResponse, 0, len(userCoupons)),
	}

	if req.OrderAmount == nil {
		for _, uc := range userCoupons {
			if dto := models.FromDomainUserCoupon(uc); dto != nil {
				resp.Coupons = append(resp.Coupons, *dto)
			}
		}
		return resp, nil
	}

	// Количество прошлых заказов считаем один раз на весь список
	hasOrders := false
	for _, uc := range userCoupons {
		if uc.Coupon != nil && uc.Coupon.IsFirstOrderOnly {
			count, err := s.bookingRepo.CountByUserID(ctx, req.UserID)
			if err != nil {
				return nil, fmt.Errorf("%w: GetUserCoupons - count bookings: %v", ErrInternal, err)
			}
			hasOrders = count > 0
			break
		}
	}

	for _, uc := range userCoupons {
		if uc.Coupon == nil {
			continue
		}
		if !uc.Coupon.AppliesTo(*req.OrderAmount) {
			continue
		}
		if uc.Coupon.IsFirstOrderOnly && hasOrders {
			continue
		}

		dto := models.FromDomainUserCoupon(uc)
		dto.EstimatedDiscount = ptr.Ptr(uc.Coupon.DiscountFor(*req.OrderAmount))
		resp.Coupons = append(resp.Coupons, *dto)
	}

	return resp, nil
}

// generateCode возвращает уникальный код купона вида KS-3F2A9B1C
func generateCode() string {
	return "KS-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}
