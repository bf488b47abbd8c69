package checkout

import (
	"fmt"
	"time"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if len(req.Items) == 0 {
		return fmt.Errorf("%w: at least one item is required", ErrInvalidInput)
	}

	seen := make(map[int64]struct{}, len(req.Items))
	for _, item := range req.Items {
		if item.KnifeTypeID <= 0 {
			return fmt.Errorf("%w: knifeTypeID must be positive", ErrInvalidInput)
		}
		if _, ok := seen[item.KnifeTypeID]; ok {
			return fmt.Errorf("%w: duplicate knifeTypeID %d", ErrInvalidInput, item.KnifeTypeID)
		}
		seen[item.KnifeTypeID] = struct{}{}

		if item.Quantity < domain.MinItemQuantity || item.Quantity > domain.MaxItemQuantity {
			return fmt.Errorf("%w: quantity must be between %d and %d",
				ErrInvalidInput, domain.MinItemQuantity, domain.MaxItemQuantity)
		}
	}

	if req.BookingDate.IsZero() {
		return fmt.Errorf("%w: booking date is required", ErrInvalidInput)
	}

	if req.BookingTime.IsZero() {
		return fmt.Errorf("%w: booking time is required", ErrInvalidInput)
	}
	if err := req.BookingTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid booking time: %v", ErrInvalidInput, err)
	}

	if req.UserCouponID != nil && *req.UserCouponID <= 0 {
		return fmt.Errorf("%w: userCouponID must be positive", ErrInvalidInput)
	}

	if req.SpecialInstructions != nil && len(*req.SpecialInstructions) > domain.MaxSpecialInstructionsLength {
		return fmt.Errorf("%w: special instructions are too long", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата заказа не в прошлом
func validateDate(date time.Time, now time.Time) error {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return ErrInvalidDate
	}
	return nil
}
