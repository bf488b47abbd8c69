package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/KS-SharpeningService/internal/config"
)

const (
	codeKeyPrefix     = "verification:code:"
	cooldownKeyPrefix = "verification:cooldown:"
)

// VerificationStore keeps phone verification codes in Redis.
// A code lives for the configured TTL and is consumed on first
// successful read; a separate cooldown key throttles resends.
type VerificationStore struct {
	client   *redis.Client
	codeTTL  time.Duration
	cooldown time.Duration
}

// NewVerificationStore подключается к Redis и проверяет соединение
func NewVerificationStore(cfg config.RedisConfig, vcfg config.VerificationConfig) (*VerificationStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		ReadTimeout:  2 * time.Second,
		WriteTimeout: 2 * time.Second,
		DialTimeout:  5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%w: NewVerificationStore - ping: %v", ErrRedisUnavailable, err)
	}

	return &VerificationStore{
		client:   rdb,
		codeTTL:  time.Duration(vcfg.CodeTTLSeconds) * time.Second,
		cooldown: time.Duration(vcfg.ResendCooldownSeconds) * time.Second,
	}, nil
}

// Save stores a code for the phone. Returns ErrResendTooSoon when the
// previous code was issued less than the cooldown ago.
func (s *VerificationStore) Save(ctx context.Context, phone, code string) error {
	// SET NX на ключе cooldown: если ключ жив, повторная отправка рано
	ok, err := s.client.SetNX(ctx, cooldownKeyPrefix+phone, "1", s.cooldown).Result()
	if err != nil {
		return fmt.Errorf("%w: Save - set cooldown: %v", ErrRedisUnavailable, err)
	}
	if !ok {
		return ErrResendTooSoon
	}

	if err := s.client.Set(ctx, codeKeyPrefix+phone, code, s.codeTTL).Err(); err != nil {
		return fmt.Errorf("%w: Save - set code: %v", ErrRedisUnavailable, err)
	}

	return nil
}

// Consume reads and deletes the stored code for the phone.
// Единственное чтение: код одноразовый вне зависимости от результата сверки.
func (s *VerificationStore) Consume(ctx context.Context, phone string) (string, error) {
	code, err := s.client.GetDel(ctx, codeKeyPrefix+phone).Result()
	if err == redis.Nil {
		return "", ErrCodeNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: Consume - getdel code: %v", ErrRedisUnavailable, err)
	}

	return code, nil
}

// Close закрывает соединение с Redis
func (s *VerificationStore) Close() error {
	return s.client.Close()
}
