package report_deposit

import (
	"github.com/m04kA/KS-SharpeningService/internal/service/payments/models"
)

// ReportDepositRequest HTTP request model
type ReportDepositRequest struct {
	DepositorName         string  `json:"depositorName"`
	CustomerBankName      *string `json:"customerBankName,omitempty"`
	CustomerAccountNumber *string `json:"customerAccountNumber,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *ReportDepositRequest) ToServiceRequest(userID int64) *models.ReportDepositRequest {
	return &models.ReportDepositRequest{
		UserID:                userID,
		DepositorName:         r.DepositorName,
		CustomerBankName:      r.CustomerBankName,
		CustomerAccountNumber: r.CustomerAccountNumber,
	}
}
