package list_bank_accounts

import (
	"net/http"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
)

type Handler struct {
	service BankAccountService
	logger  Logger
}

func NewHandler(service BankAccountService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/bank-accounts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/bank-accounts - Failed to list accounts: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /admin/bank-accounts - Accounts retrieved: count=%d", len(result.Accounts))
	handlers.RespondJSON(w, http.StatusOK, result)
}
