package set_default_bank_account

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
	"github.com/m04kA/KS-SharpeningService/internal/service/bankaccounts"
)

const (
	msgInvalidAccountID = "계좌 ID가 올바르지 않습니다"
	msgNotFound         = "계좌를 찾을 수 없습니다"
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

// Handle PATCH /api/v1/admin/bank-accounts/{accountId}/default
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	accountID, err := strconv.ParseInt(vars["accountId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /admin/bank-accounts/{id}/default - Invalid account ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAccountID)
		return
	}

	result, err := h.service.SetDefault(r.Context(), accountID)
	if err != nil {
		switch {
		case errors.Is(err, bankaccounts.ErrAccountNotFound):
			h.logger.Warn("PATCH /admin/bank-accounts/{id}/default - Account not found: account_id=%d", accountID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("PATCH /admin/bank-accounts/{id}/default - Failed to set default: account_id=%d, error=%v", accountID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /admin/bank-accounts/{id}/default - Default account changed: account_id=%d", accountID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
