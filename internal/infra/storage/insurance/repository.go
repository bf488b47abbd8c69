package insurance

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	"github.com/m04kA/KS-SharpeningService/pkg/dbmetrics"
	"github.com/m04kA/KS-SharpeningService/pkg/psqlbuilder"
)

var policyColumns = []string{
	"id",
	"user_id",
	"product_id",
	"coverage_amount",
	"start_date",
	"end_date",
	"status",
	"created_at",
}

var claimColumns = []string{
	"id",
	"policy_id",
	"user_id",
	"claim_amount",
	"damage_description",
	"damage_photos",
	"claim_reason",
	"status",
	"review_note",
	"reviewed_at",
	"reviewed_by",
	"created_at",
}

// Repository репозиторий страховых продуктов, полисов и требований
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория страхования
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveProduct returns the single active insurance product.
func (r *Repository) GetActiveProduct(ctx context.Context) (*domain.InsuranceProduct, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id", "name", "premium_per_unit", "coverage_amount", "is_active", "created_at",
	).
		From("insurance_products").
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("id").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveProduct - build select query: %v", ErrBuildQuery, err)
	}

	var product domain.InsuranceProduct
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&product.ID,
		&product.Name,
		&product.PremiumPerUnit,
		&product.CoverageAmount,
		&product.IsActive,
		&product.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveProduct - scan product: %v", ErrScanRow, err)
	}

	return &product, nil
}

// CreatePolicy создает полис для пользователя
func (r *Repository) CreatePolicy(ctx context.Context, policy *domain.UserInsurance) (*domain.UserInsurance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("user_insurances").
		Columns(
			"user_id",
			"product_id",
			"coverage_amount",
			"start_date",
			"end_date",
			"status",
		).
		Values(
			policy.UserID,
			policy.ProductID,
			policy.CoverageAmount,
			policy.StartDate,
			policy.EndDate,
			policy.Status,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreatePolicy - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&policy.ID, &policy.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreatePolicy - execute insert: %v", ErrExecQuery, err)
	}

	return policy, nil
}

// GetPolicyByID получает полис по ID
func (r *Repository) GetPolicyByID(ctx context.Context, id int64) (*domain.UserInsurance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(policyColumns...).
		From("user_insurances").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем полис до конца рассмотрения требования
	if dbmetrics.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPolicyByID - build select query: %v", ErrBuildQuery, err)
	}

	policy, err := scanPolicy(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetPolicyByID - scan policy: %v", ErrScanRow, err)
	}

	return policy, nil
}

// GetPoliciesByUserID возвращает все полисы пользователя
func (r *Repository) GetPoliciesByUserID(ctx context.Context, userID int64) ([]domain.UserInsurance, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(policyColumns...).
		From("user_insurances").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPoliciesByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetPoliciesByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var policies []domain.UserInsurance
	for rows.Next() {
		policy, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetPoliciesByUserID - scan policy: %v", ErrScanRow, err)
		}
		policies = append(policies, *policy)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetPoliciesByUserID - iterate rows: %v", ErrExecQuery, err)
	}

	return policies, nil
}

// CreateClaim создает страховое требование в статусе pending
func (r *Repository) CreateClaim(ctx context.Context, claim *domain.InsuranceClaim) (*domain.InsuranceClaim, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("insurance_claims").
		Columns(
			"policy_id",
			"user_id",
			"claim_amount",
			"damage_description",
			"damage_photos",
			"claim_reason",
			"status",
		).
		Values(
			claim.PolicyID,
			claim.UserID,
			claim.ClaimAmount,
			claim.DamageDescription,
			pq.Array(claim.DamagePhotos),
			claim.ClaimReason,
			claim.Status,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateClaim - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&claim.ID, &claim.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateClaim - execute insert: %v", ErrExecQuery, err)
	}

	return claim, nil
}

// GetClaimByID получает требование по ID
func (r *Repository) GetClaimByID(ctx context.Context, id int64) (*domain.InsuranceClaim, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(claimColumns...).
		From("insurance_claims").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetClaimByID - build select query: %v", ErrBuildQuery, err)
	}

	claim, err := scanClaim(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrClaimNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetClaimByID - scan claim: %v", ErrScanRow, err)
	}

	return claim, nil
}

// GetClaimsByUserID возвращает требования пользователя
func (r *Repository) GetClaimsByUserID(ctx context.Context, userID int64) ([]domain.InsuranceClaim, error) {
	return r.listClaims(ctx, squirrel.Eq{"user_id": userID})
}

// ListClaims возвращает требования с опциональным фильтром по статусу (для админки)
func (r *Repository) ListClaims(ctx context.Context, status *domain.ClaimStatus) ([]domain.InsuranceClaim, error) {
	var where squirrel.Eq
	if status != nil {
		where = squirrel.Eq{"status": *status}
	}
	return r.listClaims(ctx, where)
}

// SumApprovedClaims returns the total approved claim amount against a policy.
func (r *Repository) SumApprovedClaims(ctx context.Context, policyID int64) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(claim_amount), 0)").
		From("insurance_claims").
		Where(squirrel.Eq{
			"policy_id": policyID,
			"status":    domain.ClaimStatusApproved,
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: SumApprovedClaims - build select query: %v", ErrBuildQuery, err)
	}

	var total int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("%w: SumApprovedClaims - scan total: %v", ErrScanRow, err)
	}

	return total, nil
}

// ReviewPendingClaim переводит требование из pending в approved/rejected.
// Guard по статусу: повторное рассмотрение возвращает ErrClaimReviewed.
func (r *Repository) ReviewPendingClaim(ctx context.Context, id int64, status domain.ClaimStatus, note *string, reviewerID int64, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("insurance_claims").
		Set("status", status).
		Set("review_note", note).
		Set("reviewed_at", now).
		Set("reviewed_by", reviewerID).
		Where(squirrel.Eq{
			"id":     id,
			"status": domain.ClaimStatusPending,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReviewPendingClaim - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ReviewPendingClaim - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ReviewPendingClaim - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrClaimReviewed
	}

	return nil
}

func (r *Repository) listClaims(ctx context.Context, where squirrel.Eq) ([]domain.InsuranceClaim, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(claimColumns...).
		From("insurance_claims").
		OrderBy("created_at DESC")
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: listClaims - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listClaims - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	var claims []domain.InsuranceClaim
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: listClaims - scan claim: %v", ErrScanRow, err)
		}
		claims = append(claims, *claim)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: listClaims - iterate rows: %v", ErrExecQuery, err)
	}

	return claims, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPolicy(row rowScanner) (*domain.UserInsurance, error) {
	var policy domain.UserInsurance
	err := row.Scan(
		&policy.ID,
		&policy.UserID,
		&policy.ProductID,
		&policy.CoverageAmount,
		&policy.StartDate,
		&policy.EndDate,
		&policy.Status,
		&policy.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

func scanClaim(row rowScanner) (*domain.InsuranceClaim, error) {
	var claim domain.InsuranceClaim
	err := row.Scan(
		&claim.ID,
		&claim.PolicyID,
		&claim.UserID,
		&claim.ClaimAmount,
		&claim.DamageDescription,
		pq.Array(&claim.DamagePhotos),
		&claim.ClaimReason,
		&claim.Status,
		&claim.ReviewNote,
		&claim.ReviewedAt,
		&claim.ReviewedBy,
		&claim.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &claim, nil
}
