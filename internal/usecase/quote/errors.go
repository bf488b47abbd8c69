package quote

import "errors"

var (
	// ErrKnifeTypeNotFound возвращается, когда вид ножа не найден в каталоге
	ErrKnifeTypeNotFound = errors.New("quote: knife type not found")

	// ErrCouponNotFound возвращается, когда купон не найден
	ErrCouponNotFound = errors.New("quote: coupon not found")

	// ErrCouponNotOwned возвращается при попытке применить чужой купон
	ErrCouponNotOwned = errors.New("quote: coupon belongs to another user")

	// ErrCouponAlreadyUsed возвращается, когда купон уже использован или истек
	ErrCouponAlreadyUsed = errors.New("quote: coupon already used or expired")

	// ErrCouponNotApplicable возвращается, когда сумма заказа ниже
	// минимальной для купона
	ErrCouponNotApplicable = errors.New("quote: coupon is not applicable to this order")

	// ErrInsuranceUnavailable возвращается, когда страхование запрошено,
	// но активного продукта нет
	ErrInsuranceUnavailable = errors.New("quote: insurance is not available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote: internal error")
)
