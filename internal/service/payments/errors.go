package payments

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrBookingNotFound возвращается, когда бронирование платежа не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда пользователь запрашивает чужой платеж
	ErrAccessDenied = errors.New("access denied")

	// ErrNotPending возвращается при операции над платежом в терминальном статусе
	ErrNotPending = errors.New("payment is not pending")

	// ErrDeadlinePassed возвращается, когда срок ожидания депозита истек
	ErrDeadlinePassed = errors.New("deposit deadline passed")

	// ErrInvalidStatus возвращается при неизвестном или недопустимом статусе
	ErrInvalidStatus = errors.New("invalid payment status")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
