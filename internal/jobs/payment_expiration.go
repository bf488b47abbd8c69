package jobs

import (
	"context"
	"time"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
)

// PaymentRepository интерфейс репозитория платежей
type PaymentRepository interface {
	ExpirePending(ctx context.Context, now time.Time) ([]*domain.Payment, error)
}

// Notifier публикует события просрочки
type Notifier interface {
	PaymentExpired(paymentID, bookingID int64)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// PaymentExpirationJob фоновый свип просроченных платежей.
// Переводит pending платежи с истекшим deposit_deadline в expired
// одним guarded-обновлением; пропущенный тик ничего не ломает,
// следующий подберет те же платежи.
type PaymentExpirationJob struct {
	paymentRepo PaymentRepository
	notifier    Notifier
	interval    time.Duration
	ticker      *time.Ticker
	done        chan struct{}
	logger      Logger
}

// NewPaymentExpirationJob создает новый экземпляр джоба
func NewPaymentExpirationJob(
	paymentRepo PaymentRepository,
	notifier Notifier,
	interval time.Duration,
	logger Logger,
) *PaymentExpirationJob {
	return &PaymentExpirationJob{
		paymentRepo: paymentRepo,
		notifier:    notifier,
		interval:    interval,
		done:        make(chan struct{}),
		logger:      logger,
	}
}

// Start запускает фоновую проверку
func (j *PaymentExpirationJob) Start(ctx context.Context) {
	j.logger.Info("PaymentExpirationJob: started, interval=%s", j.interval)

	j.ticker = time.NewTicker(j.interval)

	// Первый проход сразу, не дожидаясь тика
	go j.sweep(ctx)

	go func() {
		for {
			select {
			case <-j.ticker.C:
				j.sweep(ctx)
			case <-j.done:
				j.logger.Info("PaymentExpirationJob: stopped")
				return
			}
		}
	}()
}

// Stop останавливает джоб
func (j *PaymentExpirationJob) Stop() {
	if j.ticker != nil {
		j.ticker.Stop()
	}
	close(j.done)
}

func (j *PaymentExpirationJob) sweep(ctx context.Context) {
	expired, err := j.paymentRepo.ExpirePending(ctx, time.Now())
	if err != nil {
		j.logger.Error("PaymentExpirationJob: sweep failed: %v", err)
		return
	}

	if len(expired) == 0 {
		return
	}

	j.logger.Info("PaymentExpirationJob: expired %d payments", len(expired))
	for _, p := range expired {
		j.notifier.PaymentExpired(p.ID, p.BookingID)
	}
}
