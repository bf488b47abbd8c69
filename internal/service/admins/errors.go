package admins

import "errors"

var (
	// ErrAdminNotFound возвращается, когда администратор не найден
	ErrAdminNotFound = errors.New("admin not found")

	// ErrInvalidCredentials возвращается при неверном email или пароле.
	// Намеренно не различает два случая.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrAccountDisabled возвращается при входе в деактивированный аккаунт
	ErrAccountDisabled = errors.New("account disabled")

	// ErrAccessDenied возвращается, когда роль не дает права на операцию
	ErrAccessDenied = errors.New("access denied")

	// ErrDuplicateEmail возвращается при создании админа с занятым email
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
