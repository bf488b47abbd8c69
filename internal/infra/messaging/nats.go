package messaging

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/nats-io/stan.go"

	"github.com/m04kA/KS-SharpeningService/internal/config"
)

// Publisher публикует события сервиса в NATS Streaming
type Publisher struct {
	conn    stan.Conn
	subject string
}

// NewPublisher подключается к кластеру NATS Streaming.
// ClientID дополняется случайным суффиксом, чтобы несколько
// инстансов сервиса не конфликтовали.
func NewPublisher(cfg config.NATSConfig) (*Publisher, error) {
	clientID := fmt.Sprintf("%s-%s", cfg.ClientID, uuid.NewString()[:8])

	conn, err := stan.Connect(cfg.ClusterID, clientID, stan.NatsURL(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("messaging: failed to connect to NATS Streaming: %w", err)
	}

	return &Publisher{
		conn:    conn,
		subject: cfg.NotificationsSubject,
	}, nil
}

// Publish сериализует событие в JSON и отправляет в канал уведомлений
func (p *Publisher) Publish(event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("messaging: failed to marshal event: %w", err)
	}

	if err := p.conn.Publish(p.subject, payload); err != nil {
		return fmt.Errorf("messaging: failed to publish to %s: %w", p.subject, err)
	}

	return nil
}

// Close закрывает соединение с NATS Streaming
func (p *Publisher) Close() error {
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
