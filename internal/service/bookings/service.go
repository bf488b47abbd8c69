package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	bookingRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/booking"
	paymentRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/payment"
	"github.com/m04kA/KS-SharpeningService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	paymentRepo PaymentRepository
	txManager   TransactionManager
	notifier    Notifier
	timer       TimeProvider
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	paymentRepo PaymentRepository,
	txManager TransactionManager,
	notifier Notifier,
	timer TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		paymentRepo: paymentRepo,
		txManager:   txManager,
		notifier:    notifier,
		timer:       timer,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Пользователь может видеть только свое бронирование
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if booking.UserID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований пользователя
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByUserID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// List возвращает бронирования для админ-панели с фильтром и пагинацией
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	filter, err := req.ToDomainFilter()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование по инициативе клиента.
// Разрешено только из pending/confirmed и не позднее чем за сутки
// до назначенного времени. Связанный pending платеж гасится в той же
// транзакции, чтобы фоновый свип не пометил его как expired.
func (s *Service) Cancel(ctx context.Context, id int64, req *models.CancelBookingRequest) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", id, req.UserID)

	var cancelled *domain.Booking
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		booking, err := s.bookingRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				return ErrBookingNotFound
			}
			return fmt.Errorf("%w: Cancel - get booking: %v", ErrInternal, err)
		}

		if booking.UserID != req.UserID {
			return ErrAccessDenied
		}

		if !booking.CanBeCancelledByCustomer(s.timer.Now()) {
			return ErrCannotCancel
		}

		if err := s.bookingRepo.Cancel(ctx, id, req.CancellationReason); err != nil {
			if errors.Is(err, bookingRepo.ErrStatusConflict) {
				return ErrCannotCancel
			}
			return fmt.Errorf("%w: Cancel - update booking: %v", ErrInternal, err)
		}

		// Платеж мог уже быть подтвержден или просрочен - тогда ничего не меняем
		payment, err := s.paymentRepo.GetByBookingID(ctx, booking.ID)
		if err != nil && !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return fmt.Errorf("%w: Cancel - get payment: %v", ErrInternal, err)
		}
		if payment != nil && payment.IsPending() {
			err = s.paymentRepo.FailPending(ctx, payment.ID, domain.PaymentStatusCancelled, "예약 취소")
			if err != nil && !errors.Is(err, paymentRepo.ErrStatusConflict) {
				return fmt.Errorf("%w: Cancel - cancel payment: %v", ErrInternal, err)
			}
		}

		cancelled = booking
		return nil
	})
	if err != nil {
		s.logger.Warn("Cancel: booking id=%d not cancelled: %v", id, err)
		return nil, err
	}

	s.notifier.BookingCancelled(cancelled.ID, cancelled.UserID, req.CancellationReason)
	s.logger.Info("Cancel: booking id=%d cancelled", id)

	return s.GetByID(ctx, id, req.UserID)
}

// UpdateStatus переводит бронирование по пайплайну выполнения (админ).
// Повторная установка текущего статуса - no-op. Переходы назад и из
// терминальных статусов запрещены.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.BookingResponse, error) {
	next, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, id)
		return nil, ErrInvalidStatus
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("%w: UpdateStatus - get booking: %v", ErrInternal, err)
	}

	// Идемпотентность: установка текущего статуса не является переходом
	if booking.Status == next {
		s.logger.Info("UpdateStatus: booking id=%d already in status=%s, no-op", id, next)
		return models.FromDomainBooking(booking), nil
	}

	if !booking.CanTransitionTo(next) {
		s.logger.Warn("UpdateStatus: illegal transition %s -> %s for booking id=%d", booking.Status, next, id)
		return nil, ErrIllegalTransition
	}

	// Guard по исходному статусу закрывает гонку двух одновременных переводов
	if err := s.bookingRepo.UpdateStatusFrom(ctx, id, booking.Status, next); err != nil {
		if errors.Is(err, bookingRepo.ErrStatusConflict) {
			return nil, ErrStatusConflict
		}
		return nil, fmt.Errorf("%w: UpdateStatus - update booking: %v", ErrInternal, err)
	}

	s.notifier.BookingStatusChanged(booking.ID, booking.UserID, booking.Status, next)
	s.logger.Info("UpdateStatus: booking id=%d moved %s -> %s", id, booking.Status, next)

	updated, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateStatus - reload booking: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(updated), nil
}
