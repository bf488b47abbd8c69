package bankaccounts

import "errors"

var (
	// ErrAccountNotFound возвращается, когда банковский счет не найден
	ErrAccountNotFound = errors.New("bank account not found")

	// ErrNoDefaultAccount возвращается, когда счет по умолчанию не назначен
	ErrNoDefaultAccount = errors.New("no default bank account")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
