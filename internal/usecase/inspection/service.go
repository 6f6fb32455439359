package inspection

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/pkg/logger"
	"github.com/frontandrew/matricula/internal/pkg/metrics"
	"github.com/frontandrew/matricula/internal/repository"
)

// RecordRequest - результат технической проверки
type RecordRequest struct {
	Plate        string    `json:"plate"`
	InspectedOn  time.Time `json:"inspected_on"`
	Approved     bool      `json:"approved"`
	Observations string    `json:"observations"`
}

// Service содержит бизнес-логику реестра технических проверок
type Service struct {
	inspectionRepo repository.InspectionRepository
	vehicleRepo    repository.VehicleRepository
	metrics        *metrics.Metrics
	logger         logger.Logger
}

// NewService создает новый экземпляр InspectionService
func NewService(
	inspectionRepo repository.InspectionRepository,
	vehicleRepo repository.VehicleRepository,
	m *metrics.Metrics,
	logger logger.Logger,
) *Service {
	return &Service{
		inspectionRepo: inspectionRepo,
		vehicleRepo:    vehicleRepo,
		metrics:        m,
		logger:         logger,
	}
}

// Record дописывает результат проверки. Повторные проверки не отклоняются
func (s *Service) Record(ctx context.Context, req *RecordRequest) (*domain.InspectionRecord, error) {
	plate := domain.NormalizePlate(req.Plate)
	if !domain.ValidatePlate(plate) {
		return nil, domain.ErrInvalidLicensePlate
	}
	if req.InspectedOn.IsZero() {
		return nil, domain.ErrInvalidInspectionDate
	}

	exists, err := s.vehicleRepo.Exists(ctx, plate)
	if err != nil {
		return nil, fmt.Errorf("failed to check vehicle: %w", err)
	}
	if !exists {
		return nil, domain.ErrVehicleNotFound
	}

	observations := strings.TrimSpace(req.Observations)
	if observations == "" {
		observations = domain.DefaultObservations
	}

	record := &domain.InspectionRecord{
		Plate:        plate,
		InspectedOn:  domain.TruncateToDay(req.InspectedOn),
		Approved:     req.Approved,
		Observations: observations,
	}

	if err := s.inspectionRepo.Create(ctx, record); err != nil {
		s.logger.Error("Failed to record inspection", map[string]interface{}{
			"plate": plate,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create inspection: %w", err)
	}

	s.metrics.IncrementInspections(record.Approved)
	s.logger.Info("Inspection recorded", map[string]interface{}{
		"plate":        plate,
		"approved":     record.Approved,
		"inspected_on": record.InspectedOn.Format(domain.DateLayout),
	})

	return record, nil
}

// HasApprovedInspection - есть ли хоть одна одобренная проверка, не обязательно последняя
func (s *Service) HasApprovedInspection(ctx context.Context, plate string) (bool, error) {
	plate = domain.NormalizePlate(plate)

	approved, err := s.inspectionRepo.HasApproved(ctx, plate)
	if err != nil {
		return false, fmt.Errorf("failed to check inspections: %w", err)
	}

	if approved {
		latest, err := s.Latest(ctx, plate)
		if err == nil && !latest.Approved {
			s.logger.Warn("Latest inspection failed, earlier approval is used", map[string]interface{}{
				"plate":        plate,
				"inspected_on": latest.InspectedOn.Format(domain.DateLayout),
			})
		}
	}

	return approved, nil
}

// Latest возвращает последнюю записанную проверку
func (s *Service) Latest(ctx context.Context, plate string) (*domain.InspectionRecord, error) {
	records, err := s.ListByPlate(ctx, plate)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, domain.ErrInspectionNotFound
	}
	return records[len(records)-1], nil
}

// ListByPlate возвращает проверки в порядке записи
func (s *Service) ListByPlate(ctx context.Context, plate string) ([]*domain.InspectionRecord, error) {
	records, err := s.inspectionRepo.ListByPlate(ctx, domain.NormalizePlate(plate))
	if err != nil {
		return nil, fmt.Errorf("failed to list inspections: %w", err)
	}
	return records, nil
}
