package notifications

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	"github.com/m04kA/KS-SharpeningService/internal/service/notifications/models"
)

// Типы событий в канале уведомлений
const (
	EventBookingCreated       = "booking.created"
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingCancelled     = "booking.cancelled"
	EventPaymentConfirmed     = "payment.confirmed"
	EventPaymentFailed        = "payment.failed"
	EventPaymentExpired       = "payment.expired"
	EventDepositReported      = "payment.deposit_reported"
	EventBroadcast            = "notification.broadcast"
)

// Event конверт события для downstream-консьюмеров (SMS, админ-бот)
type Event struct {
	Type       string                 `json:"type"`
	OccurredAt time.Time              `json:"occurredAt"`
	Payload    map[string]interface{} `json:"payload"`
}

// Service публикует доменные события в NATS.
// Публикация никогда не роняет вызвавшую операцию: бизнес-результат
// уже зафиксирован в базе, потеря уведомления только логируется.
type Service struct {
	publisher Publisher
	timer     TimeProvider
	logger    Logger
}

// NewService создает новый экземпляр сервиса уведомлений
func NewService(publisher Publisher, timer TimeProvider, logger Logger) *Service {
	return &Service{
		publisher: publisher,
		timer:     timer,
		logger:    logger,
	}
}

// BookingCreated публикует событие создания бронирования
func (s *Service) BookingCreated(bookingID, userID int64, totalAmount int64) {
	s.publish(EventBookingCreated, map[string]interface{}{
		"bookingId":   bookingID,
		"userId":      userID,
		"totalAmount": totalAmount,
	})
}

// BookingStatusChanged публикует событие перехода по пайплайну выполнения
func (s *Service) BookingStatusChanged(bookingID, userID int64, from, to domain.BookingStatus) {
	s.publish(EventBookingStatusChanged, map[string]interface{}{
		"bookingId": bookingID,
		"userId":    userID,
		"from":      string(from),
		"to":        string(to),
		"label":     to.Label(),
	})
}

// BookingCancelled публикует событие отмены бронирования
func (s *Service) BookingCancelled(bookingID, userID int64, reason string) {
	s.publish(EventBookingCancelled, map[string]interface{}{
		"bookingId": bookingID,
		"userId":    userID,
		"reason":    reason,
	})
}

// PaymentConfirmed публикует событие подтверждения платежа
func (s *Service) PaymentConfirmed(paymentID, bookingID int64, confirmedAmount int64, mismatch bool) {
	s.publish(EventPaymentConfirmed, map[string]interface{}{
		"paymentId":       paymentID,
		"bookingId":       bookingID,
		"confirmedAmount": confirmedAmount,
		"amountMismatch":  mismatch,
	})
}

// PaymentFailed публикует событие отклонения платежа
func (s *Service) PaymentFailed(paymentID, bookingID int64, status domain.PaymentStatus, note string) {
	s.publish(EventPaymentFailed, map[string]interface{}{
		"paymentId": paymentID,
		"bookingId": bookingID,
		"status":    string(status),
		"note":      note,
	})
}

// PaymentExpired публикует событие просрочки депозита
func (s *Service) PaymentExpired(paymentID, bookingID int64) {
	s.publish(EventPaymentExpired, map[string]interface{}{
		"paymentId": paymentID,
		"bookingId": bookingID,
	})
}

// Broadcast публикует массовое уведомление для всех пользователей.
// В отличие от доменных событий ошибка публикации возвращается
// вызывающему: кроме самой публикации у операции нет результата.
func (s *Service) Broadcast(req *models.BroadcastRequest) (*models.BroadcastResponse, error) {
	title := strings.TrimSpace(req.Title)
	message := strings.TrimSpace(req.Message)
	if title == "" || message == "" {
		return nil, fmt.Errorf("%w: title and message are required", ErrInvalidInput)
	}

	event := Event{
		Type:       EventBroadcast,
		OccurredAt: s.timer.Now(),
		Payload: map[string]interface{}{
			"title":   title,
			"message": message,
		},
	}
	if err := s.publisher.Publish(event); err != nil {
		s.logger.Error("Broadcast: event %s lost: %v", EventBroadcast, err)
		return nil, fmt.Errorf("%w: Broadcast - publish: %v", ErrInternal, err)
	}

	s.logger.Info("Broadcast: event %s sent", EventBroadcast)
	return &models.BroadcastResponse{
		Type:       EventBroadcast,
		OccurredAt: event.OccurredAt,
	}, nil
}

// DepositReported публикует сигнал "клиент сообщил о переводе"
func (s *Service) DepositReported(paymentID, bookingID int64, depositorName string) {
	s.publish(EventDepositReported, map[string]interface{}{
		"paymentId":     paymentID,
		"bookingId":     bookingID,
		"depositorName": depositorName,
	})
}

func (s *Service) publish(eventType string, payload map[string]interface{}) {
	event := Event{
		Type:       eventType,
		OccurredAt: s.timer.Now(),
		Payload:    payload,
	}
	if err := s.publisher.Publish(event); err != nil {
		s.logger.Error("publish: event %s lost: %v", eventType, err)
		return
	}
	s.logger.Info("publish: event %s sent", eventType)
}
