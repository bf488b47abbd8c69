package list_knife_types

import (
	"net/http"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/knife-types
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /knife-types - Failed to list knife types: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /knife-types - Knife types retrieved: count=%d", len(result.KnifeTypes))
	handlers.RespondJSON(w, http.StatusOK, result)
}
