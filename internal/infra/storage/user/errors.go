package user

import "errors"

var (
	ErrUserNotFound   = errors.New("storage/user: user not found")
	ErrDuplicatePhone = errors.New("storage/user: phone already registered")
	ErrBuildQuery     = errors.New("storage/user: failed to build query")
	ErrExecQuery      = errors.New("storage/user: failed to execute query")
	ErrScanRow        = errors.New("storage/user: failed to scan row")
)
