package bankaccounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	bankaccountRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/bankaccount"
	"github.com/m04kA/KS-SharpeningService/internal/service/bankaccounts/models"
)

// Service сервис для работы со счетами платформы
type Service struct {
	accountRepo BankAccountRepository
	txManager   TransactionManager
	logger      Logger
}

// NewService создает новый экземпляр сервиса счетов
func NewService(
	accountRepo BankAccountRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		accountRepo: accountRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Create добавляет счет платформы.
// Если новый счет помечен как основной, признак снимается с прежнего
// основного в той же транзакции.
func (s *Service) Create(ctx context.Context, req *models.CreateAccountRequest) (*models.AccountResponse, error) {
	if req.BankName == "" || req.AccountNumber == "" || req.AccountHolder == "" {
		return nil, fmt.Errorf("%w: bank name, account number and holder are required", ErrInvalidInput)
	}

	account := &domain.BankAccount{
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountHolder: req.AccountHolder,
		IsDefault:     req.IsDefault,
		Description:   req.Description,
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if req.IsDefault {
			if err := s.accountRepo.UnsetDefaultAll(ctx); err != nil {
				return fmt.Errorf("%w: Create - unset default: %v", ErrInternal, err)
			}
		}

		created, err := s.accountRepo.Create(ctx, account)
		if err != nil {
			return fmt.Errorf("%w: Create - create account: %v", ErrInternal, err)
		}
		account = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Create: bank account id=%d created (default=%t)", account.ID, account.IsDefault)
	return models.FromDomainAccount(account), nil
}

// List возвращает все счета платформы (админ)
func (s *Service) List(ctx context.Context) (*models.AccountListResponse, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainAccountList(accounts), nil
}

// GetDefault возвращает счет по умолчанию - реквизиты для переводов
func (s *Service) GetDefault(ctx context.Context) (*models.AccountResponse, error) {
	account, err := s.accountRepo.GetDefault(ctx)
	if err != nil {
		if errors.Is(err, bankaccountRepo.ErrNoDefaultAccount) {
			return nil, ErrNoDefaultAccount
		}
		return nil, fmt.Errorf("%w: GetDefault - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainAccount(account), nil
}

// SetDefault назначает счет основным.
// Снятие признака со старого счета и назначение нового выполняются
// в одной транзакции: промежуточное состояние без основного счета
// снаружи не наблюдаемо.
func (s *Service) SetDefault(ctx context.Context, id int64) (*models.AccountResponse, error) {
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		if err := s.accountRepo.UnsetDefaultAll(ctx); err != nil {
			return fmt.Errorf("%w: SetDefault - unset default: %v", ErrInternal, err)
		}
		if err := s.accountRepo.SetDefault(ctx, id); err != nil {
			if errors.Is(err, bankaccountRepo.ErrAccountNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("%w: SetDefault - set default: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("SetDefault: account id=%d not set as default: %v", id, err)
		return nil, err
	}

	s.logger.Info("SetDefault: account id=%d is now the default", id)
	return s.GetDefault(ctx)
}
