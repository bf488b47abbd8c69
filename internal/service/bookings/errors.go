package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда пользователь запрашивает чужое бронирование
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	// (терминальный статус или меньше суток до назначенного времени)
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrInvalidStatus возвращается при неизвестном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrIllegalTransition возвращается при запрещенном переходе статуса
	// (назад по пайплайну или из терминального состояния)
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrStatusConflict возвращается при гонке на смене статуса
	ErrStatusConflict = errors.New("booking status changed concurrently")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
