package cache

import "errors"

var (
	ErrCodeNotFound     = errors.New("cache: verification code not found or expired")
	ErrResendTooSoon    = errors.New("cache: resend requested before cooldown passed")
	ErrRedisUnavailable = errors.New("cache: redis operation failed")
)
