package confirm_payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("confirm_payment: payment not found")

	// ErrNotPending возвращается, когда платеж уже в терминальном статусе.
	// В том числе при гонке двух одновременных подтверждений: выигрывает
	// ровно одно, второе получает эту ошибку.
	ErrNotPending = errors.New("confirm_payment: payment is not pending")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("confirm_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("confirm_payment: internal error")
)
