package admins

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	adminRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/admin"
	"github.com/m04kA/KS-SharpeningService/internal/service/admins/models"
)

// Claims содержимое JWT токена админ-панели
type Claims struct {
	jwt.StandardClaims
	Role string `json:"role"`
}

// Service сервис аккаунтов администраторов.
// Вход только по email и bcrypt-паролю; захардкоженных
// учетных записей и обходных путей нет.
type Service struct {
	adminRepo AdminRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	timer     TimeProvider
	logger    Logger
}

// NewService создает новый экземпляр сервиса администраторов
func NewService(
	adminRepo AdminRepository,
	jwtSecret string,
	tokenTTL time.Duration,
	timer TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		adminRepo: adminRepo,
		jwtSecret: []byte(jwtSecret),
		tokenTTL:  tokenTTL,
		timer:     timer,
		logger:    logger,
	}
}

// Login аутентифицирует администратора и выдает JWT.
// Неверный email и неверный пароль дают одинаковую ошибку.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	admin, err := s.adminRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, adminRepo.ErrAdminNotFound) {
			s.logger.Warn("Login: unknown email %s", req.Email)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: Login - get admin: %v", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for admin id=%d", admin.ID)
		return nil, ErrInvalidCredentials
	}

	if !admin.IsActive {
		s.logger.Warn("Login: disabled account id=%d", admin.ID)
		return nil, ErrAccountDisabled
	}

	expiresAt := s.timer.Now().Add(s.tokenTTL)
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.FormatInt(admin.ID, 10),
			ExpiresAt: expiresAt.Unix(),
		},
		Role: string(admin.Role),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: Login - sign token: %v", ErrInternal, err)
	}

	if err := s.adminRepo.UpdateLastLogin(ctx, admin.ID); err != nil {
		// Не критично для входа, только логируем
		s.logger.Error("Login: update last login for admin id=%d: %v", admin.ID, err)
	}

	s.logger.Info("Login: admin id=%d logged in", admin.ID)
	return &models.LoginResponse{
		Token:     tokenString,
		ExpiresAt: expiresAt,
		Admin:     *models.FromDomainAdmin(admin),
	}, nil
}

// ParseToken проверяет подпись и срок действия токена
func (s *Service) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}
	return claims, nil
}

// Create создает аккаунт администратора.
// Доступно только роли super_admin.
func (s *Service) Create(ctx context.Context, req *models.CreateAdminRequest) (*models.AdminResponse, error) {
	if err := s.requireAdminManager(ctx, req.ActorID); err != nil {
		return nil, err
	}

	role := domain.AdminRole(req.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, req.Role)
	}
	if req.Email == "" || req.Name == "" {
		return nil, fmt.Errorf("%w: email and name are required", ErrInvalidInput)
	}
	if len(req.Password) < 8 {
		return nil, fmt.Errorf("%w: password must be at least 8 characters", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - hash password: %v", ErrInternal, err)
	}

	admin := &domain.Admin{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
		Role:         role,
		IsActive:     true,
	}

	created, err := s.adminRepo.Create(ctx, admin)
	if err != nil {
		if errors.Is(err, adminRepo.ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("%w: Create - create admin: %v", ErrInternal, err)
	}

	s.logger.Info("Create: admin id=%d (%s) created by actor=%d", created.ID, created.Role, req.ActorID)
	return models.FromDomainAdmin(created), nil
}

// Deactivate выключает аккаунт администратора.
// Доступно только роли super_admin; самодеактивация запрещена,
// чтобы нельзя было потерять последнего super_admin.
func (s *Service) Deactivate(ctx context.Context, id int64, req *models.DeactivateAdminRequest) error {
	if err := s.requireAdminManager(ctx, req.ActorID); err != nil {
		return err
	}

	if id == req.ActorID {
		return fmt.Errorf("%w: cannot deactivate own account", ErrInvalidInput)
	}

	if err := s.adminRepo.SetActive(ctx, id, false); err != nil {
		if errors.Is(err, adminRepo.ErrAdminNotFound) {
			return ErrAdminNotFound
		}
		return fmt.Errorf("%w: Deactivate - update admin: %v", ErrInternal, err)
	}

	s.logger.Info("Deactivate: admin id=%d deactivated by actor=%d", id, req.ActorID)
	return nil
}

func (s *Service) requireAdminManager(ctx context.Context, actorID int64) error {
	actor, err := s.adminRepo.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, adminRepo.ErrAdminNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: requireAdminManager - get actor: %v", ErrInternal, err)
	}
	if !actor.IsActive || !actor.Role.CanManageAdmins() {
		s.logger.Warn("requireAdminManager: actor=%d (%s) denied", actor.ID, actor.Role)
		return ErrAccessDenied
	}
	return nil
}
