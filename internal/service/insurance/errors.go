package insurance

import "errors"

var (
	// ErrProductNotFound возвращается, когда нет активного страхового продукта
	ErrProductNotFound = errors.New("insurance product not found")

	// ErrPolicyNotFound возвращается, когда полис не найден
	ErrPolicyNotFound = errors.New("insurance policy not found")

	// ErrClaimNotFound возвращается, когда требование не найдено
	ErrClaimNotFound = errors.New("insurance claim not found")

	// ErrPolicyInactive возвращается при требовании по неактивному полису
	ErrPolicyInactive = errors.New("insurance policy is not active")

	// ErrCoverageExceeded возвращается, когда сумма требования превышает
	// остаток покрытия полиса
	ErrCoverageExceeded = errors.New("claim amount exceeds remaining coverage")

	// ErrClaimReviewed возвращается при повторном рассмотрении требования
	ErrClaimReviewed = errors.New("claim already reviewed")

	// ErrAccessDenied возвращается при обращении к чужому полису
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
