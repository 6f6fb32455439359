package http

import (
	"context"
	"net/http"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/pkg/logger"
	"github.com/frontandrew/matricula/internal/usecase/voucher"
	"github.com/go-chi/chi/v5"
)

// VoucherService определяет интерфейс для сервиса comprobantes
type VoucherService interface {
	IssueForPlate(ctx context.Context, plate string, in domain.FeeInputs) (*voucher.Issued, error)
	FindActiveForPlate(ctx context.Context, plate string) (*domain.Voucher, error)
	IsExpired(v *domain.Voucher) bool
	ListByPlate(ctx context.Context, plate string) ([]*voucher.Entry, error)
	GetByNumber(ctx context.Context, number string) (*voucher.Entry, error)
	ExpireOverdue(ctx context.Context) (int, error)
	Report(ctx context.Context) (*domain.VoucherReport, error)
}

// VoucherHandler обрабатывает запросы связанные с comprobantes
type VoucherHandler struct {
	voucherService VoucherService
	logger         logger.Logger
}

// NewVoucherHandler создает новый handler
func NewVoucherHandler(voucherService VoucherService, logger logger.Logger) *VoucherHandler {
	return &VoucherHandler{
		voucherService: voucherService,
		logger:         logger,
	}
}

// IssueVoucher считает матрикулу и выдает comprobante
// POST /api/v1/vehicles/{plate}/vouchers
func (h *VoucherHandler) IssueVoucher(w http.ResponseWriter, r *http.Request) {
	var in domain.FeeInputs
	if err := decodeJSON(r, &in, true); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	issued, err := h.voucherService.IssueForPlate(r.Context(), plateParam(r), in)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to issue voucher")
		return
	}

	respondSuccess(w, http.StatusCreated, issued)
}

// ListVouchers возвращает comprobantes автомобиля
// GET /api/v1/vehicles/{plate}/vouchers
func (h *VoucherHandler) ListVouchers(w http.ResponseWriter, r *http.Request) {
	entries, err := h.voucherService.ListByPlate(r.Context(), plateParam(r))
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to list vouchers")
		return
	}

	respondSuccess(w, http.StatusOK, entries)
}

// GetActiveVoucher возвращает последний PENDING comprobante и признак просрочки
// GET /api/v1/vehicles/{plate}/vouchers/active
func (h *VoucherHandler) GetActiveVoucher(w http.ResponseWriter, r *http.Request) {
	v, err := h.voucherService.FindActiveForPlate(r.Context(), plateParam(r))
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to find voucher")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"voucher": v,
		"expired": h.voucherService.IsExpired(v),
	})
}

// ExpireOverdue сохраняет EXPIRED для просроченных comprobantes
// POST /api/v1/vouchers/expire
func (h *VoucherHandler) ExpireOverdue(w http.ResponseWriter, r *http.Request) {
	n, err := h.voucherService.ExpireOverdue(r.Context())
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to expire vouchers")
		return
	}

	respondSuccess(w, http.StatusOK, map[string]int{
		"expired": n,
	})
}

// GetVoucher возвращает comprobante по номеру
// GET /api/v1/vouchers/{number}
func (h *VoucherHandler) GetVoucher(w http.ResponseWriter, r *http.Request) {
	entry, err := h.voucherService.GetByNumber(r.Context(), chi.URLParam(r, "number"))
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to get voucher")
		return
	}

	respondSuccess(w, http.StatusOK, entry)
}

// Report возвращает сводку по реестру comprobantes
// GET /api/v1/reports/vouchers
func (h *VoucherHandler) Report(w http.ResponseWriter, r *http.Request) {
	report, err := h.voucherService.Report(r.Context())
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to build voucher report")
		return
	}

	respondSuccess(w, http.StatusOK, report)
}
