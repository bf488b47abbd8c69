package get_default_bank_account

import (
	"errors"
	"net/http"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
	"github.com/m04kA/KS-SharpeningService/internal/service/bankaccounts"
)

const (
	msgNoDefaultAccount = "입금 계좌가 설정되지 않았습니다"
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

// Handle GET /api/v1/bank-account
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	account, err := h.service.GetDefault(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, bankaccounts.ErrNoDefaultAccount):
			h.logger.Warn("GET /bank-account - No default account assigned")
			handlers.RespondNotFound(w, msgNoDefaultAccount)

		default:
			h.logger.Error("GET /bank-account - Failed to get default account: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bank-account - Default account retrieved: account_id=%d", account.ID)
	handlers.RespondJSON(w, http.StatusOK, account)
}
