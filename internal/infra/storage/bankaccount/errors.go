package bankaccount

import "errors"

var (
	// ErrAccountNotFound возвращается, когда банковский счет не найден
	ErrAccountNotFound = errors.New("bankaccount.repository: bank account not found")

	// ErrNoDefaultAccount возвращается, когда счет по умолчанию не назначен
	ErrNoDefaultAccount = errors.New("bankaccount.repository: no default bank account")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("bankaccount.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("bankaccount.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("bankaccount.repository: failed to scan row")
)
