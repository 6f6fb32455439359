package matriculation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/pkg/clock"
	"github.com/frontandrew/matricula/internal/pkg/logger"
	"github.com/frontandrew/matricula/internal/pkg/metrics"
	"github.com/frontandrew/matricula/internal/repository"
)

// InspectionChecker - доступ к реестру проверок через его сервис
type InspectionChecker interface {
	HasApprovedInspection(ctx context.Context, plate string) (bool, error)
	Latest(ctx context.Context, plate string) (*domain.InspectionRecord, error)
}

// NumberGenerator выдает номера сертификатов
type NumberGenerator interface {
	Certificate(plate string, date time.Time) string
}

// Service завершает матрикуляцию и показывает ее состояние.
// mu держит проверки Finalize и запись сертификата одной операцией
type Service struct {
	mu              sync.Mutex
	vehicleRepo     repository.VehicleRepository
	voucherRepo     repository.VoucherRepository
	paymentRepo     repository.PaymentRepository
	certificateRepo repository.CertificateRepository
	inspections     InspectionChecker
	numbers         NumberGenerator
	clock           clock.Clock
	allowReissue    bool
	metrics         *metrics.Metrics
	logger          logger.Logger
}

// NewService создает новый экземпляр MatriculationService
func NewService(
	vehicleRepo repository.VehicleRepository,
	voucherRepo repository.VoucherRepository,
	paymentRepo repository.PaymentRepository,
	certificateRepo repository.CertificateRepository,
	inspections InspectionChecker,
	numbers NumberGenerator,
	clk clock.Clock,
	allowReissue bool,
	m *metrics.Metrics,
	logger logger.Logger,
) *Service {
	return &Service{
		vehicleRepo:     vehicleRepo,
		voucherRepo:     voucherRepo,
		paymentRepo:     paymentRepo,
		certificateRepo: certificateRepo,
		inspections:     inspections,
		numbers:         numbers,
		clock:           clk,
		allowReissue:    allowReissue,
		metrics:         m,
		logger:          logger,
	}
}

// Finalize выдает сертификат. Проверки идут строго по порядку:
// автомобиль, оплата, одобренная техническая проверка
func (s *Service) Finalize(ctx context.Context, plate string) (*domain.CertificateRecord, error) {
	plate = domain.NormalizePlate(plate)
	if !domain.ValidatePlate(plate) {
		return nil, domain.ErrInvalidLicensePlate
	}

	s.logger.Info("Finalizing matriculation", map[string]interface{}{
		"plate": plate,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	vehicle, err := s.vehicleRepo.GetByPlate(ctx, plate)
	if errors.Is(err, domain.ErrVehicleNotFound) {
		return nil, s.reject(plate, "vehicle", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	paid, err := s.paymentRepo.ExistsForPlate(ctx, plate)
	if err != nil {
		return nil, fmt.Errorf("failed to check payments: %w", err)
	}
	if !paid {
		return nil, s.reject(plate, "payment", domain.ErrPaymentNotFound)
	}

	approved, err := s.inspections.HasApprovedInspection(ctx, plate)
	if err != nil {
		return nil, err
	}
	if !approved {
		return nil, s.reject(plate, "inspection", domain.ErrInspectionNotApproved)
	}

	if !s.allowReissue {
		existing, err := s.certificateRepo.ListByPlate(ctx, plate)
		if err != nil {
			return nil, fmt.Errorf("failed to list certificates: %w", err)
		}
		if len(existing) > 0 {
			return nil, s.reject(plate, "already_matriculated", domain.ErrAlreadyMatriculated)
		}
	}

	now := s.clock.Now()
	certificate := domain.NewCertificate(s.numbers.Certificate(plate, now), vehicle, now)

	if err := s.certificateRepo.Create(ctx, certificate); err != nil {
		s.logger.Error("Failed to issue certificate", map[string]interface{}{
			"plate": plate,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create certificate: %w", err)
	}

	s.metrics.IncrementCertificatesIssued()
	s.logger.Info("Vehicle matriculated", map[string]interface{}{
		"plate":              plate,
		"certificate_number": certificate.Number,
		"valid_until":        certificate.ValidUntil().Format(domain.DateLayout),
	})

	return certificate, nil
}

// Status собирает положение автомобиля в процессе повторными запросами к реестрам
func (s *Service) Status(ctx context.Context, plate string) (*domain.MatriculationStatus, error) {
	plate = domain.NormalizePlate(plate)
	if !domain.ValidatePlate(plate) {
		return nil, domain.ErrInvalidLicensePlate
	}

	status := &domain.MatriculationStatus{
		Plate: plate,
		State: domain.StateUnregistered,
	}

	exists, err := s.vehicleRepo.Exists(ctx, plate)
	if err != nil {
		return nil, fmt.Errorf("failed to check vehicle: %w", err)
	}
	if !exists {
		return status, nil
	}
	status.State = domain.StateRegistered

	now := s.clock.Now()
	voucher, err := s.voucherRepo.FindLatestPending(ctx, plate)
	switch {
	case err == nil:
		if voucher.IsActive(now) {
			status.ActiveVoucher = voucher
			status.State = domain.StateVoucherIssued
		}
	case errors.Is(err, domain.ErrNoPendingVoucher):
	default:
		return nil, fmt.Errorf("failed to find voucher: %w", err)
	}

	paid, err := s.paymentRepo.ExistsForPlate(ctx, plate)
	if err != nil {
		return nil, fmt.Errorf("failed to check payments: %w", err)
	}
	if paid {
		status.State = domain.StatePaid
	}

	status.InspectionApproved, err = s.inspections.HasApprovedInspection(ctx, plate)
	if err != nil {
		return nil, err
	}
	latest, err := s.inspections.Latest(ctx, plate)
	switch {
	case err == nil:
		status.LatestInspection = latest
	case errors.Is(err, domain.ErrInspectionNotFound):
	default:
		return nil, err
	}

	certificates, err := s.certificateRepo.ListByPlate(ctx, plate)
	if err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	if len(certificates) > 0 {
		status.Certificate = certificates[len(certificates)-1]
		status.State = domain.StateMatriculado
	}

	status.CanFinalize = paid && status.InspectionApproved && (s.allowReissue || status.Certificate == nil)

	return status, nil
}

// ListCertificates возвращает все выданные сертификаты в порядке выдачи
func (s *Service) ListCertificates(ctx context.Context) ([]*domain.CertificateRecord, error) {
	certificates, err := s.certificateRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	return certificates, nil
}

func (s *Service) reject(plate, reason string, err error) error {
	s.metrics.IncrementFinalizeRejected(reason)
	s.logger.Warn("Matriculation rejected", map[string]interface{}{
		"plate":  plate,
		"reason": reason,
		"error":  err.Error(),
	})
	return err
}
