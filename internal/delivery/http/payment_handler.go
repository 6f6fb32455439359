package http

import (
	"context"
	"net/http"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/pkg/logger"
	"github.com/frontandrew/matricula/internal/usecase/payment"
)

// PaymentService определяет интерфейс для сервиса оплаты
type PaymentService interface {
	Pay(ctx context.Context, req *payment.PayRequest) (*domain.PaymentRecord, error)
	FindByPlate(ctx context.Context, plate string) ([]*domain.PaymentRecord, error)
}

// PaymentHandler обрабатывает запросы оплаты
type PaymentHandler struct {
	paymentService PaymentService
	logger         logger.Logger
}

// NewPaymentHandler создает новый handler
func NewPaymentHandler(paymentService PaymentService, logger logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		logger:         logger,
	}
}

// Pay оплачивает действующий comprobante автомобиля
// POST /api/v1/vehicles/{plate}/payments
func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	var req payment.PayRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// Номер берется только из пути
	req.Plate = plateParam(r)

	p, err := h.paymentService.Pay(r.Context(), &req)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to apply payment")
		return
	}

	respondSuccess(w, http.StatusCreated, p)
}

// ListPayments возвращает платежи автомобиля
// GET /api/v1/vehicles/{plate}/payments
func (h *PaymentHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.paymentService.FindByPlate(r.Context(), plateParam(r))
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to list payments")
		return
	}

	respondSuccess(w, http.StatusOK, payments)
}
