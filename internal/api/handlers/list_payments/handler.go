package list_payments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/KS-SharpeningService/internal/api/handlers"
	"github.com/m04kA/KS-SharpeningService/internal/service/payments"
	"github.com/m04kA/KS-SharpeningService/internal/service/payments/models"
)

const (
	msgInvalidStatus = "결제 상태값이 올바르지 않습니다"
	msgInvalidPaging = "페이지 파라미터가 올바르지 않습니다"
)

type Handler struct {
	service PaymentService
	logger  Logger
}

func NewHandler(service PaymentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/payments?status=&page=&limit=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListPaymentsRequest{}

	query := r.URL.Query()
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}

	var err error
	if req.Page, err = parsePositiveInt(query.Get("page")); err != nil {
		h.logger.Warn("GET /admin/payments - Invalid page: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaging)
		return
	}
	if req.Limit, err = parsePositiveInt(query.Get("limit")); err != nil {
		h.logger.Warn("GET /admin/payments - Invalid limit: %v", err)
		handlers.RespondBadRequest(w, msgInvalidPaging)
		return
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrInvalidStatus):
			h.logger.Warn("GET /admin/payments - Invalid status filter: %q", query.Get("status"))
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /admin/payments - Failed to list payments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /admin/payments - Payments retrieved: count=%d", len(result.Payments))
	handlers.RespondJSON(w, http.StatusOK, result)
}

// parsePositiveInt пустая строка трактуется как 0 (значение по умолчанию)
func parsePositiveInt(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, strconv.ErrRange
	}
	return value, nil
}
