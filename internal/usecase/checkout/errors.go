package checkout

import "errors"

var (
	// ErrKnifeTypeNotFound возвращается, когда вид ножа не найден в каталоге
	ErrKnifeTypeNotFound = errors.New("checkout: knife type not found")

	// ErrCouponNotFound возвращается, когда купон не найден
	ErrCouponNotFound = errors.New("checkout: coupon not found")

	// ErrCouponNotOwned возвращается при попытке применить чужой купон
	ErrCouponNotOwned = errors.New("checkout: coupon belongs to another user")

	// ErrCouponAlreadyUsed возвращается, когда купон уже использован
	// или истек (в том числе при гонке двух одновременных оформлений)
	ErrCouponAlreadyUsed = errors.New("checkout: coupon already used or expired")

	// ErrCouponNotApplicable возвращается, когда сумма заказа ниже
	// минимальной для купона или купон только для первого заказа
	ErrCouponNotApplicable = errors.New("checkout: coupon is not applicable to this order")

	// ErrInsuranceUnavailable возвращается, когда страхование запрошено,
	// но активного продукта нет
	ErrInsuranceUnavailable = errors.New("checkout: insurance is not available")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("checkout: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("checkout: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("checkout: internal error")
)
