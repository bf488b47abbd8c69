package models

import "github.com/m04kA/KS-SharpeningService/internal/domain"

// KnifeTypeResponse ответ с данными вида ножа
type KnifeTypeResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	MarketPrice   int64  `json:"marketPrice"`
	DiscountPrice *int64 `json:"discountPrice,omitempty"`
	Price         int64  `json:"price"` // эффективная цена за единицу
	Description   string `json:"description,omitempty"`
}

// KnifeTypeListResponse ответ со списком видов ножей
type KnifeTypeListResponse struct {
	KnifeTypes []KnifeTypeResponse `json:"knifeTypes"`
}

// FromDomainKnifeType конвертирует domain модель в DTO
func FromDomainKnifeType(k *domain.KnifeType) *KnifeTypeResponse {
	if k == nil {
		return nil
	}

	resp := &KnifeTypeResponse{
		ID:          k.ID,
		Name:        k.Name,
		MarketPrice: k.MarketPrice,
		Price:       k.Price(),
		Description: k.Description,
	}

	if k.DiscountPrice > 0 {
		discount := k.DiscountPrice
		resp.DiscountPrice = &discount
	}

	return resp
}

// FromDomainKnifeTypeList конвертирует список domain моделей в DTO
func FromDomainKnifeTypeList(types []*domain.KnifeType) *KnifeTypeListResponse {
	resp := &KnifeTypeListResponse{
		KnifeTypes: make([]KnifeTypeResponse, 0, len(types)),
	}
	for _, k := range types {
		resp.KnifeTypes = append(resp.KnifeTypes, *FromDomainKnifeType(k))
	}
	return resp
}
