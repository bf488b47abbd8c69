package catalog

import (
	"context"
	"fmt"

	"github.com/m04kA/KS-SharpeningService/internal/service/catalog/models"
)

// Service сервис каталога видов ножей
type Service struct {
	repo   CatalogRepository
	logger Logger
}

func NewService(repo CatalogRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List возвращает все виды ножей с эффективными ценами
func (s *Service) List(ctx context.Context) (*models.KnifeTypeListResponse, error) {
	knifeTypes, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("Service.List - failed to list knife types: %v", err)
		return nil, fmt.Errorf("%w: List: %v", ErrInternal, err)
	}

	return models.FromDomainKnifeTypeList(knifeTypes), nil
}
