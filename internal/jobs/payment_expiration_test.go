package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
)

type fakePaymentRepo struct {
	mu      sync.Mutex
	expired []*domain.Payment
	err     error
	calls   int
}

func (f *fakePaymentRepo) ExpirePending(_ context.Context, _ time.Time) ([]*domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.expired, f.err
}

func (f *fakePaymentRepo) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeNotifier struct {
	mu       sync.Mutex
	payments []int64
	bookings []int64
}

func (f *fakeNotifier) PaymentExpired(paymentID, bookingID int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments = append(f.payments, paymentID)
	f.bookings = append(f.bookings, bookingID)
}

func (f *fakeNotifier) notified() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int64(nil), f.payments...)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func TestJob_SweepsImmediatelyOnStart(t *testing.T) {
	repo := &fakePaymentRepo{
		expired: []*domain.Payment{
			{ID: 201, BookingID: 101},
			{ID: 202, BookingID: 102},
		},
	}
	notifier := &fakeNotifier{}

	job := NewPaymentExpirationJob(repo, notifier, time.Hour, nopLogger{})
	job.Start(context.Background())
	defer job.Stop()

	waitFor(t, func() bool { return len(notifier.notified()) == 2 })
	assert.Equal(t, []int64{201, 202}, notifier.notified())
}

func TestJob_SweepsOnEveryTick(t *testing.T) {
	repo := &fakePaymentRepo{}
	notifier := &fakeNotifier{}

	job := NewPaymentExpirationJob(repo, notifier, 10*time.Millisecond, nopLogger{})
	job.Start(context.Background())
	defer job.Stop()

	waitFor(t, func() bool { return repo.callCount() >= 3 })
}

func TestJob_RepositoryErrorDoesNotStopJob(t *testing.T) {
	repo := &fakePaymentRepo{err: errors.New("connection lost")}
	notifier := &fakeNotifier{}

	job := NewPaymentExpirationJob(repo, notifier, 10*time.Millisecond, nopLogger{})
	job.Start(context.Background())
	defer job.Stop()

	waitFor(t, func() bool { return repo.callCount() >= 2 })
	assert.Empty(t, notifier.notified())
}

func TestJob_StopHaltsSweeping(t *testing.T) {
	repo := &fakePaymentRepo{}
	notifier := &fakeNotifier{}

	job := NewPaymentExpirationJob(repo, notifier, 10*time.Millisecond, nopLogger{})
	job.Start(context.Background())

	waitFor(t, func() bool { return repo.callCount() >= 1 })
	job.Stop()

	calls := repo.callCount()
	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, repo.callCount(), calls+1)
}
