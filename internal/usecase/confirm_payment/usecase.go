package confirm_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	bookingRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/payment"
)

// UseCase use case админского подтверждения платежа.
// Переход pending -> confirmed защищен guarded-обновлением: из двух
// одновременных подтверждений ровно одно выигрывает.
type UseCase struct {
	paymentRepo        PaymentRepository
	bookingRepo        BookingRepository
	txManager          TransactionManager
	notifier           Notifier
	timeProvider       TimeProvider
	autoConfirmBooking bool
	logger             Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifier Notifier,
	autoConfirmBooking bool,
	logger Logger,
) *UseCase {
	return &UseCase{
		paymentRepo:        paymentRepo,
		bookingRepo:        bookingRepo,
		txManager:          txManager,
		notifier:           notifier,
		timeProvider:       &RealTimeProvider{},
		autoConfirmBooking: autoConfirmBooking,
		logger:             logger,
	}
}

// Execute выполняет подтверждение платежа
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ConfirmPayment: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("ConfirmPayment: payment id=%d by admin=%d, amount=%d",
		req.PaymentID, req.AdminID, req.ConfirmedAmount)

	var (
		payment      *domain.Payment
		booking      *domain.Booking
		bookingMoved bool
		mismatch     bool
	)

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// GetByID в транзакции берет FOR UPDATE
		current, err := uc.paymentRepo.GetByID(txCtx, req.PaymentID)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				return ErrPaymentNotFound
			}
			return fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
		}

		if !current.IsPending() {
			uc.logger.Warn("ConfirmPayment: payment id=%d is %s, not pending", current.ID, current.Status)
			return ErrNotPending
		}

		// Расхождение суммы фиксируем, но подтверждение не блокируем:
		// решение о возврате или доплате принимает админ вне системы
		mismatch = req.ConfirmedAmount != current.Amount
		if mismatch {
			uc.logger.Warn("ConfirmPayment: amount mismatch for payment id=%d: expected=%d, confirmed=%d",
				current.ID, current.Amount, req.ConfirmedAmount)
		}

		err = uc.paymentRepo.ConfirmPending(txCtx, current.ID, paymentRepo.ConfirmParams{
			ConfirmedAmount:   req.ConfirmedAmount,
			DepositDate:       req.DepositDate,
			BankTransactionID: req.BankTransactionID,
			ConfirmationNote:  req.ConfirmationNote,
			ConfirmedBy:       req.AdminID,
			AmountMismatch:    mismatch,
		})
		if err != nil {
			if errors.Is(err, paymentRepo.ErrStatusConflict) {
				// Второе подтверждение проиграло гонку
				return ErrNotPending
			}
			return fmt.Errorf("%w: failed to confirm payment: %v", ErrInternal, err)
		}
		payment = current

		booking, err = uc.bookingRepo.GetByID(txCtx, current.BookingID)
		if err != nil {
			return fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
		}

		// При включенной политике бронирование переходит pending -> confirmed
		// в той же транзакции, что и платеж
		if uc.autoConfirmBooking && booking.Status == domain.BookingStatusPending {
			err = uc.bookingRepo.UpdateStatusFrom(txCtx, booking.ID, domain.BookingStatusPending, domain.BookingStatusConfirmed)
			if err != nil {
				if errors.Is(err, bookingRepo.ErrStatusConflict) {
					// Бронирование успели перевести параллельно - не откатываем платеж
					uc.logger.Warn("ConfirmPayment: booking id=%d moved concurrently, skip auto-confirm", booking.ID)
					return nil
				}
				return fmt.Errorf("%w: failed to advance booking: %v", ErrInternal, err)
			}
			bookingMoved = true
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.PaymentConfirmed(payment.ID, payment.BookingID, req.ConfirmedAmount, mismatch)

	bookingStatus := booking.Status
	if bookingMoved {
		bookingStatus = domain.BookingStatusConfirmed
		uc.notifier.BookingStatusChanged(booking.ID, booking.UserID, domain.BookingStatusPending, domain.BookingStatusConfirmed)
	}

	uc.logger.Info("ConfirmPayment: payment id=%d confirmed, booking id=%d status=%s",
		payment.ID, booking.ID, bookingStatus)

	return &Response{
		PaymentID:       payment.ID,
		BookingID:       payment.BookingID,
		Status:          string(domain.PaymentStatusConfirmed),
		ConfirmedAmount: req.ConfirmedAmount,
		ExpectedAmount:  payment.Amount,
		AmountMismatch:  mismatch,
		BookingStatus:   string(bookingStatus),
	}, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.PaymentID <= 0 {
		return fmt.Errorf("%w: paymentID must be positive", ErrInvalidInput)
	}
	if req.AdminID <= 0 {
		return fmt.Errorf("%w: adminID must be positive", ErrInvalidInput)
	}
	if req.ConfirmedAmount <= 0 {
		return fmt.Errorf("%w: confirmedAmount must be positive", ErrInvalidInput)
	}
	if req.DepositDate.IsZero() {
		return fmt.Errorf("%w: depositDate is required", ErrInvalidInput)
	}
	if req.ConfirmationNote != nil && len(*req.ConfirmationNote) > domain.MaxConfirmationNoteLength {
		return fmt.Errorf("%w: confirmation note is too long", ErrInvalidInput)
	}
	return nil
}
