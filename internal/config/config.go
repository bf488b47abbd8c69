package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Redis        RedisConfig        `toml:"redis"`
	NATS         NATSConfig         `toml:"nats"`
	Auth         AuthConfig         `toml:"auth"`
	Payments     PaymentsConfig     `toml:"payments"`
	Verification VerificationConfig `toml:"verification"`
	SMSGateway   SMSGatewayConfig   `toml:"sms_gateway"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN возвращает строку подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// RedisConfig настройки Redis (хранилище кодов подтверждения)
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// NATSConfig настройки NATS Streaming (канал уведомлений)
type NATSConfig struct {
	URL                  string `toml:"url"`
	ClusterID            string `toml:"cluster_id"`
	ClientID             string `toml:"client_id"`
	NotificationsSubject string `toml:"notifications_subject"`
}

// AuthConfig настройки аутентификации админ-панели
type AuthConfig struct {
	JWTSecret     string `toml:"jwt_secret"`
	TokenTTLHours int    `toml:"token_ttl_hours"`
}

// PaymentsConfig бизнес-настройки платежей
type PaymentsConfig struct {
	// DepositDeadlineHours срок ожидания депозита для pending платежей (часов)
	DepositDeadlineHours int `toml:"deposit_deadline_hours"`
	// AutoConfirmBooking переводить ли бронирование pending -> confirmed
	// в той же транзакции при подтверждении платежа
	AutoConfirmBooking bool `toml:"auto_confirm_booking"`
	// ExpirationSweepSeconds период фоновой проверки просроченных платежей
	ExpirationSweepSeconds int `toml:"expiration_sweep_seconds"`
}

// VerificationConfig настройки кодов подтверждения по SMS
type VerificationConfig struct {
	CodeTTLSeconds        int `toml:"code_ttl_seconds"`
	ResendCooldownSeconds int `toml:"resend_cooldown_seconds"`
}

// SMSGatewayConfig настройки клиента SMS-провайдера
type SMSGatewayConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("config: auth.jwt_secret is required")
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Payments.DepositDeadlineHours == 0 {
		cfg.Payments.DepositDeadlineHours = 24
	}
	if cfg.Payments.ExpirationSweepSeconds == 0 {
		cfg.Payments.ExpirationSweepSeconds = 60
	}
	if cfg.Verification.CodeTTLSeconds == 0 {
		cfg.Verification.CodeTTLSeconds = 180
	}
	if cfg.Verification.ResendCooldownSeconds == 0 {
		cfg.Verification.ResendCooldownSeconds = 60
	}
	if cfg.Auth.TokenTTLHours == 0 {
		cfg.Auth.TokenTTLHours = 24
	}
}
