package http

import (
	"context"
	"net/http"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/pkg/logger"
	"github.com/frontandrew/matricula/internal/usecase/fee"
	"github.com/frontandrew/matricula/internal/usecase/vehicle"
)

// VehicleService определяет интерфейс для сервиса автомобилей
type VehicleService interface {
	Register(ctx context.Context, req *vehicle.RegisterVehicleRequest) (*domain.VehicleRecord, error)
	GetByPlate(ctx context.Context, plate string) (*domain.VehicleRecord, error)
	List(ctx context.Context) ([]*domain.VehicleRecord, error)
}

// FeeService определяет интерфейс расчета матрикулы
type FeeService interface {
	Quote(ctx context.Context, plate string, in domain.FeeInputs) (*domain.FeeBreakdown, error)
	Schedule() fee.Schedule
}

// VehicleHandler обрабатывает запросы реестра автомобилей и расчета
type VehicleHandler struct {
	vehicleService VehicleService
	feeService     FeeService
	logger         logger.Logger
}

// NewVehicleHandler создает новый handler
func NewVehicleHandler(vehicleService VehicleService, feeService FeeService, logger logger.Logger) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		feeService:     feeService,
		logger:         logger,
	}
}

// RegisterVehicle регистрирует автомобиль
// POST /api/v1/vehicles
func (h *VehicleHandler) RegisterVehicle(w http.ResponseWriter, r *http.Request) {
	var req vehicle.RegisterVehicleRequest
	if err := decodeJSON(r, &req, false); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	v, err := h.vehicleService.Register(r.Context(), &req)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to register vehicle")
		return
	}

	respondSuccess(w, http.StatusCreated, v)
}

// ListVehicles возвращает все автомобили
// GET /api/v1/vehicles
func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.vehicleService.List(r.Context())
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to list vehicles")
		return
	}

	respondSuccess(w, http.StatusOK, vehicles)
}

// GetVehicle возвращает автомобиль по номеру
// GET /api/v1/vehicles/{plate}
func (h *VehicleHandler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	v, err := h.vehicleService.GetByPlate(r.Context(), plateParam(r))
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to get vehicle")
		return
	}

	respondSuccess(w, http.StatusOK, v)
}

// QuoteFees считает матрикулу без выдачи comprobante
// POST /api/v1/vehicles/{plate}/fees
func (h *VehicleHandler) QuoteFees(w http.ResponseWriter, r *http.Request) {
	var in domain.FeeInputs
	if err := decodeJSON(r, &in, true); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	breakdown, err := h.feeService.Quote(r.Context(), plateParam(r), in)
	if err != nil {
		respondDomainError(w, h.logger, err, "Failed to compute fees")
		return
	}

	respondSuccess(w, http.StatusOK, breakdown)
}

// GetFeeSchedule возвращает действующие тарифы
// GET /api/v1/fees/schedule
func (h *VehicleHandler) GetFeeSchedule(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, http.StatusOK, h.feeService.Schedule())
}
