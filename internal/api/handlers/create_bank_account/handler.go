package create_bank_account

import (
	"errors"
	"net/http"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
	"github.com/m04kA/KS-SharpeningService/internal/service/bankaccounts"
	"github.com/m04kA/KS-SharpeningService/internal/service/bankaccounts/models"
)

const (
	msgInvalidRequestBody = "요청 본문이 올바르지 않습니다"
	msgInvalidInput       = "입력값이 올바르지 않습니다"
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

// Handle POST /api/v1/admin/bank-accounts
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/bank-accounts - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, bankaccounts.ErrInvalidInput):
			h.logger.Warn("POST /admin/bank-accounts - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /admin/bank-accounts - Failed to create account: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/bank-accounts - Account created: account_id=%d, is_default=%t", result.ID, result.IsDefault)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
