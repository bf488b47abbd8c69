package users

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	"github.com/m04kA/KS-SharpeningService/internal/infra/cache"
	userRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/user"
	"github.com/m04kA/KS-SharpeningService/internal/service/users/models"
)

// Корейские мобильные номера: 010 + 7-8 цифр
var phonePattern = regexp.MustCompile(`^01[016789]\d{7,8}$`)

// Service сервис регистрации и входа по номеру телефона
type Service struct {
	userRepo  UserRepository
	codeStore CodeStore
	smsClient SMSClient
	codeTTL   int
	logger    Logger
}

// NewService создает новый экземпляр сервиса пользователей
func NewService(
	userRepo UserRepository,
	codeStore CodeStore,
	smsClient SMSClient,
	codeTTLSeconds int,
	logger Logger,
) *Service {
	return &Service{
		userRepo:  userRepo,
		codeStore: codeStore,
		smsClient: smsClient,
		codeTTL:   codeTTLSeconds,
		logger:    logger,
	}
}

// RequestCode генерирует код подтверждения и отправляет его по SMS.
// Повторный запрос до истечения кулдауна отклоняется.
func (s *Service) RequestCode(ctx context.Context, req *models.RequestCodeRequest) (*models.RequestCodeResponse, error) {
	phone, err := normalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}

	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("%w: RequestCode - generate code: %v", ErrInternal, err)
	}

	if err := s.codeStore.Save(ctx, phone, code); err != nil {
		if errors.Is(err, cache.ErrResendTooSoon) {
			s.logger.Warn("RequestCode: resend throttled for phone=%s", maskPhone(phone))
			return nil, ErrResendTooSoon
		}
		return nil, fmt.Errorf("%w: RequestCode - store code: %v", ErrInternal, err)
	}

	if err := s.smsClient.SendVerificationCode(ctx, phone, code); err != nil {
		s.logger.Error("RequestCode: sms send failed for phone=%s: %v", maskPhone(phone), err)
		return nil, fmt.Errorf("%w: RequestCode - send sms: %v", ErrInternal, err)
	}

	s.logger.Info("RequestCode: code sent to phone=%s", maskPhone(phone))
	return &models.RequestCodeResponse{ExpiresInSeconds: s.codeTTL}, nil
}

// VerifyCode проверяет код и возвращает пользователя.
// Код одноразовый: и успешная, и неуспешная сверка его съедает.
// Для нового номера создается аккаунт (Name обязателен),
// для известного - выполняется вход.
func (s *Service) VerifyCode(ctx context.Context, req *models.VerifyCodeRequest) (*models.UserResponse, error) {
	phone, err := normalizePhone(req.Phone)
	if err != nil {
		return nil, err
	}
	if len(req.Code) != domain.VerificationCodeLength {
		return nil, ErrCodeMismatch
	}

	stored, err := s.codeStore.Consume(ctx, phone)
	if err != nil {
		if errors.Is(err, cache.ErrCodeNotFound) {
			return nil, ErrCodeMismatch
		}
		return nil, fmt.Errorf("%w: VerifyCode - consume code: %v", ErrInternal, err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(req.Code)) != 1 {
		s.logger.Warn("VerifyCode: code mismatch for phone=%s", maskPhone(phone))
		return nil, ErrCodeMismatch
	}

	existing, err := s.userRepo.GetByPhone(ctx, phone)
	if err == nil {
		s.logger.Info("VerifyCode: user id=%d logged in", existing.ID)
		return models.FromDomainUser(existing, false), nil
	}
	if !errors.Is(err, userRepo.ErrUserNotFound) {
		return nil, fmt.Errorf("%w: VerifyCode - get user: %v", ErrInternal, err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required for signup", ErrInvalidInput)
	}

	created, err := s.userRepo.Create(ctx, &domain.User{Name: name, Phone: phone})
	if err != nil {
		// Гонка двух параллельных регистраций одного номера
		if errors.Is(err, userRepo.ErrDuplicatePhone) {
			existing, err := s.userRepo.GetByPhone(ctx, phone)
			if err != nil {
				return nil, fmt.Errorf("%w: VerifyCode - get user after conflict: %v", ErrInternal, err)
			}
			return models.FromDomainUser(existing, false), nil
		}
		return nil, fmt.Errorf("%w: VerifyCode - create user: %v", ErrInternal, err)
	}

	s.logger.Info("VerifyCode: user id=%d registered", created.ID)
	return models.FromDomainUser(created, true), nil
}

// normalizePhone убирает разделители и валидирует формат
func normalizePhone(raw string) (string, error) {
	phone := strings.NewReplacer("-", "", " ", "", "+82", "0").Replace(strings.TrimSpace(raw))
	if !phonePattern.MatchString(phone) {
		return "", ErrInvalidPhone
	}
	return phone, nil
}

// generateCode возвращает криптослучайный 6-значный код
func generateCode() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < domain.VerificationCodeLength; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", domain.VerificationCodeLength, n), nil
}

// maskPhone скрывает середину номера в логах
func maskPhone(phone string) string {
	if len(phone) < 7 {
		return "***"
	}
	return phone[:3] + "****" + phone[len(phone)-4:]
}
