package insurance

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	insuranceRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/insurance"
	"github.com/m04kA/KS-SharpeningService/internal/service/insurance/models"
)

// Service сервис страхования ножей
type Service struct {
	insuranceRepo InsuranceRepository
	txManager     TransactionManager
	timer         TimeProvider
	logger        Logger
}

// NewService создает новый экземпляр сервиса страхования
func NewService(
	insuranceRepo InsuranceRepository,
	txManager TransactionManager,
	timer TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		insuranceRepo: insuranceRepo,
		txManager:     txManager,
		timer:         timer,
		logger:        logger,
	}
}

// GetProduct возвращает активный страховой продукт
func (s *Service) GetProduct(ctx context.Context) (*models.ProductResponse, error) {
	product, err := s.insuranceRepo.GetActiveProduct(ctx)
	if err != nil {
		if errors.Is(err, insuranceRepo.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("%w: GetProduct - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainProduct(product), nil
}

// GetUserPolicies возвращает полисы пользователя с остатком покрытия
func (s *Service) GetUserPolicies(ctx context.Context, userID int64) (*models.PolicyListResponse, error) {
	policies, err := s.insuranceRepo.GetPoliciesByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserPolicies: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserPolicies - repository error: %v", ErrInternal, err)
	}

	resp := &models.PolicyListResponse{
		Policies: make([]models.PolicyResponse, 0, len(policies)),
	}
	for i := range policies {
		policy := &policies[i]
		approved, err := s.insuranceRepo.SumApprovedClaims(ctx, policy.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: GetUserPolicies - sum claims: %v", ErrInternal, err)
		}
		resp.Policies = append(resp.Policies, *models.FromDomainPolicy(policy, policy.RemainingCoverage(approved)))
	}

	return resp, nil
}

// CreateClaim создает страховое требование.
// Полис должен быть активен на момент подачи, сумма требования
// не может превышать остаток покрытия с учетом одобренных требований.
func (s *Service) CreateClaim(ctx context.Context, req *models.CreateClaimRequest) (*models.ClaimResponse, error) {
	if req.ClaimAmount <= 0 {
		return nil, fmt.Errorf("%w: claim amount must be positive", ErrInvalidInput)
	}
	if req.DamageDescription == "" || req.ClaimReason == "" {
		return nil, fmt.Errorf("%w: damage description and claim reason are required", ErrInvalidInput)
	}

	var claim *domain.InsuranceClaim
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// GetPolicyByID берет FOR UPDATE: параллельные требования
		// по одному полису сериализуются
		policy, err := s.insuranceRepo.GetPolicyByID(ctx, req.PolicyID)
		if err != nil {
			if errors.Is(err, insuranceRepo.ErrPolicyNotFound) {
				return ErrPolicyNotFound
			}
			return fmt.Errorf("%w: CreateClaim - get policy: %v", ErrInternal, err)
		}

		if policy.UserID != req.UserID {
			return ErrAccessDenied
		}
		if !policy.IsActiveAt(s.timer.Now()) {
			return ErrPolicyInactive
		}

		approved, err := s.insuranceRepo.SumApprovedClaims(ctx, policy.ID)
		if err != nil {
			return fmt.Errorf("%w: CreateClaim - sum claims: %v", ErrInternal, err)
		}
		if req.ClaimAmount > policy.RemainingCoverage(approved) {
			return ErrCoverageExceeded
		}

		created, err := s.insuranceRepo.CreateClaim(ctx, &domain.InsuranceClaim{
			PolicyID:          policy.ID,
			UserID:            req.UserID,
			ClaimAmount:       req.ClaimAmount,
			DamageDescription: req.DamageDescription,
			DamagePhotos:      req.DamagePhotos,
			ClaimReason:       req.ClaimReason,
			Status:            domain.ClaimStatusPending,
		})
		if err != nil {
			return fmt.Errorf("%w: CreateClaim - create claim: %v", ErrInternal, err)
		}
		claim = created
		return nil
	})
	if err != nil {
		s.logger.Warn("CreateClaim: rejected for user=%d policy=%d: %v", req.UserID, req.PolicyID, err)
		return nil, err
	}

	s.logger.Info("CreateClaim: claim id=%d created for policy=%d amount=%d", claim.ID, claim.PolicyID, claim.ClaimAmount)
	return models.FromDomainClaim(claim), nil
}

// GetUserClaims возвращает требования пользователя
func (s *Service) GetUserClaims(ctx context.Context, userID int64) (*models.ClaimListResponse, error) {
	claims, err := s.insuranceRepo.GetClaimsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUserClaims - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainClaimList(claims), nil
}

// ListClaims возвращает требования для админ-панели
func (s *Service) ListClaims(ctx context.Context, req *models.ListClaimsRequest) (*models.ClaimListResponse, error) {
	var status *domain.ClaimStatus
	if req.Status != nil {
		st := domain.ClaimStatus(*req.Status)
		if st != domain.ClaimStatusPending && st != domain.ClaimStatusApproved && st != domain.ClaimStatusRejected {
			return nil, fmt.Errorf("%w: unknown claim status %q", ErrInvalidInput, *req.Status)
		}
		status = &st
	}

	claims, err := s.insuranceRepo.ListClaims(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("%w: ListClaims - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainClaimList(claims), nil
}

// ReviewClaim выносит решение по требованию (админ).
// Решение однократное: guard по статусу pending закрывает гонку
// двух одновременных рассмотрений.
func (s *Service) ReviewClaim(ctx context.Context, claimID int64, req *models.ReviewClaimRequest) (*models.ClaimResponse, error) {
	status := domain.ClaimStatusRejected
	if req.Approve {
		status = domain.ClaimStatusApproved
	}

	err := s.insuranceRepo.ReviewPendingClaim(ctx, claimID, status, req.Note, req.ReviewerID, s.timer.Now())
	if err != nil {
		if errors.Is(err, insuranceRepo.ErrClaimReviewed) {
			s.logger.Warn("ReviewClaim: claim id=%d already reviewed", claimID)
			return nil, ErrClaimReviewed
		}
		return nil, fmt.Errorf("%w: ReviewClaim - update claim: %v", ErrInternal, err)
	}

	claim, err := s.insuranceRepo.GetClaimByID(ctx, claimID)
	if err != nil {
		if errors.Is(err, insuranceRepo.ErrClaimNotFound) {
			return nil, ErrClaimNotFound
		}
		return nil, fmt.Errorf("%w: ReviewClaim - reload claim: %v", ErrInternal, err)
	}

	s.logger.Info("ReviewClaim: claim id=%d %s by admin=%d", claimID, status, req.ReviewerID)
	return models.FromDomainClaim(claim), nil
}
