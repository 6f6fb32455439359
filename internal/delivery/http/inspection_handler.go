package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/pkg/clock"
	"github.com/frontandrew/matricula/internal/pkg/logger"
	"github.com/frontandrew/matricula/internal/usecase/inspection"
)

// InspectionService определяет интерфейс для сервиса технических проверок
type InspectionService interface {
	Record(ctx context.Context, req *inspection.RecordRequest) (*domain.InspectionRecord, error)
	ListByPlate(ctx context.Context, plate string) ([]*domain.InspectionRecord, error)
}

// recordInspectionRequest - тело запроса. Дата в формате DD/MM/YYYY, пустая - сегодня
type recordInspectionRequest struct {
	InspectedOn  string `json:"inspected_on"`
	Approved     bool   `json:"approved"`
	Observations string `json:"observations"`
}

// InspectionHandler обрабатывает запросы технических проверок
type InspectionHandler struct {
	inspectionService InspectionService
	clock             clock.Clock
	logger            logger.Logger
}

// NewInspectionHandler создает новый handler
func NewInspectionHandler(inspectionService InspectionService, clk clock.Clock, logger logger.Logger) *InspectionHandler {
	return &InspectionHandler{
		inspectionService: inspectionService,
		clock:             clk,
		logger:            logger,
	}
}

// RecordInspection записывает результат проверки
// POST /api/v1/vehicles/{plate}/inspections
func (h *InspectionHandler) RecordInspection(w http.ResponseWriter, r *http.Request) {
	var body recordInspectionRequest
	if err := decodeJSON(r, &body, false); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	inspectedOn := h.clock.Now()
	if s := strings.TrimSpace(body.InspectedOn); s != "" {
		parsed, err := time.ParseInLocation(domain.DateLayout, s, time.Local)
		if err != nil {
			respondError(w, http.StatusBadRequest, domain.ErrInvalidInspectionDate.Error())
			return
		}
		inspectedOn = parsed
	}

	record, err := h.inspectionService.Record(r.Context(), &inspection.RecordRequest{
		Plate:        plateParam(r),
		InspectedOn:  inspectedOn,
		Approved:     body.Approved,
		Observations: body.Observations,
	})
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to record inspection")
		return
	}

	respondSuccess(w, http.StatusCreated, record)
}

// ListInspections возвращает проверки автомобиля
// GET /api/v1/vehicles/{plate}/inspections
func (h *InspectionHandler) ListInspections(w http.ResponseWriter, r *http.Request) {
	records, err := h.inspectionService.ListByPlate(r.Context(), plateParam(r))
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to list inspections")
		return
	}

	respondSuccess(w, http.StatusOK, records)
}
