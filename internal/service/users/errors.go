package users

import "errors"

var (
	// ErrInvalidPhone возвращается при некорректном номере телефона
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrCodeMismatch возвращается при неверном или истекшем коде.
	// Намеренно не различает два случая.
	ErrCodeMismatch = errors.New("verification code mismatch or expired")

	// ErrResendTooSoon возвращается при повторном запросе кода до
	// истечения кулдауна
	ErrResendTooSoon = errors.New("verification code already sent")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
