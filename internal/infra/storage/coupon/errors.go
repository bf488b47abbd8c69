package coupon

import "errors"

var (
	// ErrCouponNotFound возвращается, когда шаблон купона не найден
	ErrCouponNotFound = errors.New("coupon.repository: coupon not found")

	// ErrUserCouponNotFound возвращается, когда выданный купон не найден
	ErrUserCouponNotFound = errors.New("coupon.repository: user coupon not found")

	// ErrAlreadyUsed возвращается, когда guarded-списание купона не нашло
	// неиспользованный и непросроченный экземпляр
	ErrAlreadyUsed = errors.New("coupon.repository: coupon already used or expired")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("coupon.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("coupon.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("coupon.repository: failed to scan row")
)
