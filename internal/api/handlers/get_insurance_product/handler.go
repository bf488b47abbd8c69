package get_insurance_product

import (
	"errors"
	"net/http"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
	"github.com/m04kA/KS-SharpeningService/internal/service/insurance"
)

const (
	msgProductNotFound = "판매 중인 보험 상품이 없습니다"
)

type Handler struct {
	service InsuranceService
	logger  Logger
}

func NewHandler(service InsuranceService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/insurance/product
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	product, err := h.service.GetProduct(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, insurance.ErrProductNotFound):
			h.logger.Warn("GET /insurance/product - No active product")
			handlers.RespondNotFound(w, msgProductNotFound)

		default:
			h.logger.Error("GET /insurance/product - Failed to get product: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /insurance/product - Product retrieved: product_id=%d", product.ID)
	handlers.RespondJSON(w, http.StatusOK, product)
}
