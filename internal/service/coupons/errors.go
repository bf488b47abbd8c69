package coupons

import "errors"

var (
	// ErrCouponNotFound возвращается, когда шаблон купона не найден
	ErrCouponNotFound = errors.New("coupon not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
