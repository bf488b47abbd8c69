package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/KS-SharpeningService/internal/domain"
	"github.com/m04kA/KS-SharpeningService/pkg/dbmetrics"
	"github.com/m04kA/KS-SharpeningService/pkg/psqlbuilder"
)

var knifeTypeColumns = []string{
	"id",
	"name",
	"market_price",
	"discount_price",
	"description",
	"created_at",
	"updated_at",
}

// Repository репозиторий каталога видов ножей
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория каталога
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// List получает весь каталог видов ножей
func (r *Repository) List(ctx context.Context) ([]*domain.KnifeType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(knifeTypeColumns...).
		From("knife_types").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanKnifeTypes(rows)
}

// GetByIDs получает виды ножей по списку ID
// Используется ценовым движком на оформлении заказа
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.KnifeType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(knifeTypeColumns...).
		From("knife_types").
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDs - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	knifeTypes, err := r.scanKnifeTypes(rows)
	if err != nil {
		return nil, err
	}

	result := make(map[int64]*domain.KnifeType, len(knifeTypes))
	for _, kt := range knifeTypes {
		result[kt.ID] = kt
	}

	return result, nil
}

func (r *Repository) scanKnifeTypes(rows *sql.Rows) ([]*domain.KnifeType, error) {
	knifeTypes := make([]*domain.KnifeType, 0)

	for rows.Next() {
		var kt domain.KnifeType
		err := rows.Scan(
			&kt.ID,
			&kt.Name,
			&kt.MarketPrice,
			&kt.DiscountPrice,
			&kt.Description,
			&kt.CreatedAt,
			&kt.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanKnifeTypes - scan row: %v", ErrScanRow, err)
		}
		knifeTypes = append(knifeTypes, &kt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanKnifeTypes - rows error: %v", ErrScanRow, err)
	}

	return knifeTypes, nil
}
