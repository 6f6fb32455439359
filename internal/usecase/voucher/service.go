package voucher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/pkg/clock"
	"github.com/frontandrew/matricula/internal/pkg/logger"
	"github.com/frontandrew/matricula/internal/pkg/metrics"
	"github.com/frontandrew/matricula/internal/repository"
)

// DefaultValidityDays - срок действия comprobante по эталонным тарифам
const DefaultValidityDays = 30

// FeeCalculator - расчет матрикулы для выдачи comprobante по номеру
type FeeCalculator interface {
	Compute(v *domain.VehicleRecord, in domain.FeeInputs) domain.FeeBreakdown
}

// NumberGenerator выдает номера comprobantes
type NumberGenerator interface {
	Voucher(plate string, date time.Time) string
}

// Entry - comprobante вместе со статусом с учетом срока действия
type Entry struct {
	*domain.Voucher
	EffectiveStatus domain.VoucherStatus `json:"effective_status"`
}

// Issued - результат выдачи comprobante по номеру
type Issued struct {
	Voucher   *domain.Voucher     `json:"voucher"`
	Breakdown domain.FeeBreakdown `json:"breakdown"`
}

// Service содержит бизнес-логику реестра comprobantes
type Service struct {
	voucherRepo  repository.VoucherRepository
	vehicleRepo  repository.VehicleRepository
	calculator   FeeCalculator
	numbers      NumberGenerator
	clock        clock.Clock
	validityDays int
	metrics      *metrics.Metrics
	logger       logger.Logger
}

// NewService создает новый экземпляр VoucherService
func NewService(
	voucherRepo repository.VoucherRepository,
	vehicleRepo repository.VehicleRepository,
	calculator FeeCalculator,
	numbers NumberGenerator,
	clk clock.Clock,
	validityDays int,
	m *metrics.Metrics,
	logger logger.Logger,
) *Service {
	if validityDays <= 0 {
		validityDays = DefaultValidityDays
	}
	return &Service{
		voucherRepo:  voucherRepo,
		vehicleRepo:  vehicleRepo,
		calculator:   calculator,
		numbers:      numbers,
		clock:        clk,
		validityDays: validityDays,
		metrics:      m,
		logger:       logger,
	}
}

// Issue создает comprobante PENDING по принятому расчету. Одна запись в реестр
func (s *Service) Issue(ctx context.Context, vehicle *domain.VehicleRecord, breakdown domain.FeeBreakdown) (*domain.Voucher, error) {
	// В реестре время хранится с точностью до минуты
	now := s.clock.Now().Truncate(time.Minute)

	voucher := &domain.Voucher{
		Number:         s.numbers.Voucher(vehicle.Plate, now),
		Plate:          vehicle.Plate,
		OwnerName:      vehicle.OwnerName,
		Classification: vehicle.Classification,
		IssuedAt:       now,
		ExpiresOn:      domain.TruncateToDay(now).AddDate(0, 0, s.validityDays),
		Total:          breakdown.Total,
		Status:         domain.VoucherPending,
	}

	if err := s.voucherRepo.Create(ctx, voucher); err != nil {
		s.logger.Error("Failed to issue voucher", map[string]interface{}{
			"plate": vehicle.Plate,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("failed to create voucher: %w", err)
	}

	s.metrics.IncrementVouchersIssued(string(vehicle.Classification.Type()), string(vehicle.Classification.Subtype()))
	s.logger.Info("Voucher issued", map[string]interface{}{
		"plate":          voucher.Plate,
		"voucher_number": voucher.Number,
		"total":          domain.FormatAmount(voucher.Total),
		"expires_on":     voucher.ExpiresOn.Format(domain.DateLayout),
	})

	return voucher, nil
}

// IssueForPlate загружает автомобиль, считает матрикулу и выдает comprobante
func (s *Service) IssueForPlate(ctx context.Context, plate string, in domain.FeeInputs) (*Issued, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	vehicle, err := s.vehicleRepo.GetByPlate(ctx, plate)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	breakdown := s.calculator.Compute(vehicle, in)

	voucher, err := s.Issue(ctx, vehicle, breakdown)
	if err != nil {
		return nil, err
	}

	return &Issued{Voucher: voucher, Breakdown: breakdown}, nil
}

// FindActiveForPlate возвращает последний PENDING comprobante.
// Срок действия не проверяется, для этого есть IsExpired
func (s *Service) FindActiveForPlate(ctx context.Context, plate string) (*domain.Voucher, error) {
	return s.voucherRepo.FindLatestPending(ctx, plate)
}

// IsExpired сравнивает срок с текущей датой
func (s *Service) IsExpired(v *domain.Voucher) bool {
	return v.IsExpired(s.clock.Now())
}

// MarkPaid переводит comprobante в PAID. PENDING и срок здесь не проверяются
func (s *Service) MarkPaid(ctx context.Context, number string) error {
	if err := s.voucherRepo.MarkPaid(ctx, number); err != nil {
		return fmt.Errorf("failed to mark voucher paid: %w", err)
	}

	s.logger.Info("Voucher marked as paid", map[string]interface{}{
		"voucher_number": number,
	})
	return nil
}

// GetByNumber возвращает comprobante по номеру с действующим статусом
func (s *Service) GetByNumber(ctx context.Context, number string) (*Entry, error) {
	v, err := s.voucherRepo.GetByNumber(ctx, strings.ToUpper(strings.TrimSpace(number)))
	if err != nil {
		return nil, fmt.Errorf("failed to get voucher: %w", err)
	}
	return &Entry{Voucher: v, EffectiveStatus: v.EffectiveStatus(s.clock.Now())}, nil
}

// ListByPlate возвращает comprobantes автомобиля с действующим статусом
func (s *Service) ListByPlate(ctx context.Context, plate string) ([]*Entry, error) {
	vouchers, err := s.voucherRepo.ListByPlate(ctx, plate)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}

	now := s.clock.Now()
	entries := make([]*Entry, 0, len(vouchers))
	for _, v := range vouchers {
		entries = append(entries, &Entry{Voucher: v, EffectiveStatus: v.EffectiveStatus(now)})
	}
	return entries, nil
}

// ExpireOverdue сохраняет EXPIRED для всех просроченных PENDING
func (s *Service) ExpireOverdue(ctx context.Context) (int, error) {
	n, err := s.voucherRepo.ExpireOverdue(ctx, s.clock.Now())
	if err != nil {
		s.logger.Error("Failed to expire vouchers", map[string]interface{}{
			"error": err.Error(),
		})
		return 0, fmt.Errorf("failed to expire vouchers: %w", err)
	}

	s.metrics.AddVouchersExpired(n)
	s.logger.Info("Overdue vouchers expired", map[string]interface{}{
		"count": n,
	})
	return n, nil
}

// Report сводит весь реестр по действующим статусам без его перезаписи
func (s *Service) Report(ctx context.Context) (*domain.VoucherReport, error) {
	vouchers, err := s.voucherRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list vouchers: %w", err)
	}

	report := domain.NewVoucherReport(vouchers, s.clock.Now())

	s.logger.Debug("Voucher report built", map[string]interface{}{
		"total":     report.Total,
		"paid":      report.Paid,
		"collected": domain.FormatAmount(report.Collected),
	})
	return report, nil
}
