package notifications

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/KS-SharpeningService/internal/service/notifications/models"
)

type fakePublisher struct {
	events     []Event
	publishErr error
}

func (p *fakePublisher) Publish(event interface{}) error {
	if p.publishErr != nil {
		return p.publishErr
	}
	p.events = append(p.events, event.(Event))
	return nil
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type notificationsFixture struct {
	svc       *Service
	publisher *fakePublisher
	now       time.Time
}

func newNotificationsFixture() *notificationsFixture {
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	f := &notificationsFixture{
		publisher: &fakePublisher{},
		now:       now,
	}

	f.svc = NewService(f.publisher, &fakeClock{now: now}, nopLogger{})
	return f
}

func TestBroadcast_PublishesEventForAllUsers(t *testing.T) {
	f := newNotificationsFixture()

	result, err := f.svc.Broadcast(&models.BroadcastRequest{
		Title:   "서비스 점검 안내",
		Message: "3월 15일 02:00~04:00 사이 서비스 이용이 제한됩니다.",
	})

	assert.NoError(t, err)
	assert.Equal(t, EventBroadcast, result.Type)
	assert.Equal(t, f.now, result.OccurredAt)

	assert.Len(t, f.publisher.events, 1)
	event := f.publisher.events[0]
	assert.Equal(t, EventBroadcast, event.Type)
	assert.Equal(t, f.now, event.OccurredAt)
	assert.Equal(t, "서비스 점검 안내", event.Payload["title"])
	assert.Equal(t, "3월 15일 02:00~04:00 사이 서비스 이용이 제한됩니다.", event.Payload["message"])
}

func TestBroadcast_TrimsSurroundingWhitespace(t *testing.T) {
	f := newNotificationsFixture()

	_, err := f.svc.Broadcast(&models.BroadcastRequest{
		Title:   "  쿠폰 발급 안내  ",
		Message: "\n신규 회원 쿠폰이 발급되었습니다.\n",
	})

	assert.NoError(t, err)
	assert.Len(t, f.publisher.events, 1)
	assert.Equal(t, "쿠폰 발급 안내", f.publisher.events[0].Payload["title"])
	assert.Equal(t, "신규 회원 쿠폰이 발급되었습니다.", f.publisher.events[0].Payload["message"])
}

func TestBroadcast_RequiresTitleAndMessage(t *testing.T) {
	cases := []struct {
		name    string
		title   string
		message string
	}{
		{"empty title", "", "점검 안내입니다."},
		{"empty message", "점검 안내", ""},
		{"whitespace only title", "   ", "점검 안내입니다."},
		{"whitespace only message", "점검 안내", "\t\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newNotificationsFixture()

			_, err := f.svc.Broadcast(&models.BroadcastRequest{
				Title:   tc.title,
				Message: tc.message,
			})

			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, f.publisher.events)
		})
	}
}

func TestBroadcast_PublishFailureIsReturned(t *testing.T) {
	f := newNotificationsFixture()
	f.publisher.publishErr = errors.New("nats: connection closed")

	_, err := f.svc.Broadcast(&models.BroadcastRequest{
		Title:   "점검 안내",
		Message: "점검이 예정되어 있습니다.",
	})

	assert.ErrorIs(t, err, ErrInternal)
}

// Потеря доменного события не должна ронять вызвавшую операцию:
// бизнес-результат уже зафиксирован в базе.
func TestDomainEventPublishFailureIsSwallowed(t *testing.T) {
	f := newNotificationsFixture()
	f.publisher.publishErr = errors.New("nats: connection closed")

	f.svc.BookingCreated(101, 42, 37000)

	assert.Empty(t, f.publisher.events)
}
