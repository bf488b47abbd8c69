package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	bankaccountRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/bankaccount"
	bookingRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/payment"
	"github.com/m04kA/KS-SharpeningService/internal/service/payments/models"
)

// Service сервис для работы с платежами
type Service struct {
	paymentRepo     PaymentRepository
	bookingRepo     BookingRepository
	bankAccountRepo BankAccountRepository
	notifier        Notifier
	timer           TimeProvider
	logger          Logger
}

// NewService создает новый экземпляр сервиса платежей
func NewService(
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	bankAccountRepo BankAccountRepository,
	notifier Notifier,
	timer TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo:     paymentRepo,
		bookingRepo:     bookingRepo,
		bankAccountRepo: bankAccountRepo,
		notifier:        notifier,
		timer:           timer,
		logger:          logger,
	}
}

// GetByBookingID получает платеж бронирования.
// Пользователь видит только платеж своего бронирования; для pending
// платежа в ответ добавляются реквизиты счета платформы.
func (s *Service) GetByBookingID(ctx context.Context, bookingID, userID int64) (*models.PaymentResponse, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: GetByBookingID - get booking: %v", ErrInternal, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("GetByBookingID: access denied for user=%d to booking id=%d", userID, bookingID)
		return nil, ErrAccessDenied
	}

	payment, err := s.paymentRepo.GetByBookingID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("%w: GetByBookingID - get payment: %v", ErrInternal, err)
	}

	resp := models.FromDomainPayment(payment)
	if payment.IsPending() {
		s.attachTransferDetails(ctx, resp)
	}

	return resp, nil
}

// ReportDeposit фиксирует сообщение клиента о сделанном переводе.
// Это сигнал для админа, не переход статуса: платеж остается pending.
// После дедлайна отчёт не принимается.
func (s *Service) ReportDeposit(ctx context.Context, paymentID int64, req *models.ReportDepositRequest) (*models.PaymentResponse, error) {
	if req.DepositorName == "" {
		return nil, fmt.Errorf("%w: depositor name is required", ErrInvalidInput)
	}

	payment, err := s.getOwnedPayment(ctx, paymentID, req.UserID)
	if err != nil {
		return nil, err
	}

	if !payment.IsPending() {
		s.logger.Warn("ReportDeposit: payment id=%d is %s, not pending", paymentID, payment.Status)
		return nil, ErrNotPending
	}

	if payment.DeadlinePassed(s.timer.Now()) {
		s.logger.Warn("ReportDeposit: deadline passed for payment id=%d", paymentID)
		return nil, ErrDeadlinePassed
	}

	err = s.paymentRepo.MarkDepositReported(ctx, paymentID, req.DepositorName, req.CustomerBankName, req.CustomerAccountNumber)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrStatusConflict) {
			return nil, ErrNotPending
		}
		return nil, fmt.Errorf("%w: ReportDeposit - mark reported: %v", ErrInternal, err)
	}

	s.notifier.DepositReported(payment.ID, payment.BookingID, req.DepositorName)
	s.logger.Info("ReportDeposit: payment id=%d reported by %s", paymentID, req.DepositorName)

	updated, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("%w: ReportDeposit - reload payment: %v", ErrInternal, err)
	}

	resp := models.FromDomainPayment(updated)
	s.attachTransferDetails(ctx, resp)
	return resp, nil
}

// Fail переводит pending платеж в failed или rejected (админ)
func (s *Service) Fail(ctx context.Context, paymentID int64, req *models.FailPaymentRequest) (*models.PaymentResponse, error) {
	status := domain.PaymentStatus(req.Status)
	if status != domain.PaymentStatusFailed && status != domain.PaymentStatusRejected {
		return nil, ErrInvalidStatus
	}

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("%w: Fail - get payment: %v", ErrInternal, err)
	}

	if err := s.paymentRepo.FailPending(ctx, paymentID, status, req.Note); err != nil {
		if errors.Is(err, paymentRepo.ErrStatusConflict) {
			s.logger.Warn("Fail: payment id=%d is not pending", paymentID)
			return nil, ErrNotPending
		}
		return nil, fmt.Errorf("%w: Fail - update payment: %v", ErrInternal, err)
	}

	s.notifier.PaymentFailed(payment.ID, payment.BookingID, status, req.Note)
	s.logger.Info("Fail: payment id=%d moved to %s", paymentID, status)

	updated, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, fmt.Errorf("%w: Fail - reload payment: %v", ErrInternal, err)
	}

	return models.FromDomainPayment(updated), nil
}

// List возвращает платежи для админ-панели с фильтром и пагинацией
func (s *Service) List(ctx context.Context, req *models.ListPaymentsRequest) (*models.PaymentListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	payments, err := s.paymentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainPaymentList(payments), nil
}

func (s *Service) getOwnedPayment(ctx context.Context, paymentID, userID int64) (*domain.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("%w: getOwnedPayment - get payment: %v", ErrInternal, err)
	}

	booking, err := s.bookingRepo.GetByID(ctx, payment.BookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: getOwnedPayment - get booking: %v", ErrInternal, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("getOwnedPayment: access denied for user=%d to payment id=%d", userID, paymentID)
		return nil, ErrAccessDenied
	}

	return payment, nil
}

// attachTransferDetails добавляет реквизиты счета по умолчанию.
// Отсутствие счета не роняет запрос: клиент увидит платеж без реквизитов.
func (s *Service) attachTransferDetails(ctx context.Context, resp *models.PaymentResponse) {
	account, err := s.bankAccountRepo.GetDefault(ctx)
	if err != nil {
		if !errors.Is(err, bankaccountRepo.ErrNoDefaultAccount) {
			s.logger.Error("attachTransferDetails: get default account: %v", err)
		}
		return
	}
	resp.TransferTo = models.FromDomainBankAccount(account)
}
