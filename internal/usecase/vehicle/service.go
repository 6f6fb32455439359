package vehicle

import (
	"context"
	"errors"
	"fmt"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/pkg/clock"
	"github.com/frontandrew/matricula/internal/pkg/logger"
	"github.com/frontandrew/matricula/internal/pkg/metrics"
	"github.com/frontandrew/matricula/internal/repository"
)

// RegisterVehicleRequest - запрос на регистрацию автомобиля
type RegisterVehicleRequest struct {
	Plate          string                `json:"plate"`
	NationalID     string                `json:"national_id"`
	OwnerName      string                `json:"owner_name"`
	Type           domain.VehicleType    `json:"type"`
	Subtype        domain.VehicleSubtype `json:"subtype"`
	ModelYear      int                   `json:"model_year"`
	AssessedValue  float64               `json:"assessed_value"`
	DisplacementCC int                   `json:"displacement_cc"`
}

// Limits - границы проверки записи
type Limits struct {
	FiscalYear int // 0 - текущий год по часам
	Assessed   domain.AssessedValueRange
}

// Service содержит бизнес-логику реестра автомобилей
type Service struct {
	vehicleRepo repository.VehicleRepository
	limits      Limits
	clock       clock.Clock
	metrics     *metrics.Metrics
	logger      logger.Logger
}

// NewService создает новый экземпляр VehicleService
func NewService(
	vehicleRepo repository.VehicleRepository,
	limits Limits,
	clk clock.Clock,
	m *metrics.Metrics,
	logger logger.Logger,
) *Service {
	return &Service{
		vehicleRepo: vehicleRepo,
		limits:      limits,
		clock:       clk,
		metrics:     m,
		logger:      logger,
	}
}

// Register проверяет все поля и добавляет автомобиль в реестр
func (s *Service) Register(ctx context.Context, req *RegisterVehicleRequest) (*domain.VehicleRecord, error) {
	plate := domain.NormalizePlate(req.Plate)

	s.logger.Info("Registering vehicle", map[string]interface{}{
		"plate": plate,
	})

	class, err := domain.NewClassification(req.Type, req.Subtype)
	if err != nil {
		return nil, err
	}

	vehicle := &domain.VehicleRecord{
		Plate:          plate,
		NationalID:     req.NationalID,
		OwnerName:      domain.CollapseSpaces(req.OwnerName),
		Classification: class,
		ModelYear:      req.ModelYear,
		AssessedValue:  req.AssessedValue,
		DisplacementCC: req.DisplacementCC,
	}

	if err := vehicle.Validate(s.vehicleLimits()); err != nil {
		s.logger.Warn("Vehicle validation failed", map[string]interface{}{
			"plate": plate,
			"error": err.Error(),
		})
		return nil, err
	}

	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		if errors.Is(err, domain.ErrVehicleAlreadyExists) {
			s.logger.Warn("Vehicle already registered", map[string]interface{}{
				"plate": plate,
			})
			return nil, err
		}
		s.logger.Error("Failed to register vehicle", map[string]interface{}{
			"plate": plate,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	s.metrics.IncrementVehiclesRegistered()
	s.logger.Info("Vehicle registered successfully", map[string]interface{}{
		"plate":          plate,
		"classification": class.String(),
	})

	return vehicle, nil
}

// GetByPlate возвращает автомобиль по номеру
func (s *Service) GetByPlate(ctx context.Context, plate string) (*domain.VehicleRecord, error) {
	plate = domain.NormalizePlate(plate)
	if !domain.ValidatePlate(plate) {
		return nil, domain.ErrInvalidLicensePlate
	}
	return s.vehicleRepo.GetByPlate(ctx, plate)
}

// Exists проверяет, зарегистрирован ли номер
func (s *Service) Exists(ctx context.Context, plate string) (bool, error) {
	return s.vehicleRepo.Exists(ctx, domain.NormalizePlate(plate))
}

// List возвращает все зарегистрированные автомобили
func (s *Service) List(ctx context.Context) ([]*domain.VehicleRecord, error) {
	return s.vehicleRepo.List(ctx)
}

func (s *Service) vehicleLimits() domain.VehicleLimits {
	year := s.limits.FiscalYear
	if year <= 0 {
		year = s.clock.Now().Year()
	}
	return domain.VehicleLimits{FiscalYear: year, Assessed: s.limits.Assessed}
}
