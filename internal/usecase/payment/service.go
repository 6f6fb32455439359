package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/pkg/clock"
	"github.com/frontandrew/matricula/internal/pkg/logger"
	"github.com/frontandrew/matricula/internal/pkg/metrics"
	"github.com/frontandrew/matricula/internal/repository"
)

// PayRequest - запрос на оплату действующего comprobante.
// Пустые PayerID и PayerName означают, что платит владелец
type PayRequest struct {
	Plate     string               `json:"plate"`
	Method    domain.PaymentMethod `json:"method"`
	Reference string               `json:"reference,omitempty"`
	PayerID   string               `json:"payer_id,omitempty"`
	PayerName string               `json:"payer_name,omitempty"`
}

// Service содержит бизнес-логику оплаты.
// mu держит проверку comprobante и обе записи одной операцией
type Service struct {
	mu           sync.Mutex
	paymentRepo  repository.PaymentRepository
	voucherRepo  repository.VoucherRepository
	vehicleRepo  repository.VehicleRepository
	clock        clock.Clock
	newReference func() string
	metrics      *metrics.Metrics
	logger       logger.Logger
}

// NewService создает новый экземпляр PaymentService
func NewService(
	paymentRepo repository.PaymentRepository,
	voucherRepo repository.VoucherRepository,
	vehicleRepo repository.VehicleRepository,
	clk clock.Clock,
	m *metrics.Metrics,
	logger logger.Logger,
) *Service {
	return &Service{
		paymentRepo:  paymentRepo,
		voucherRepo:  voucherRepo,
		vehicleRepo:  vehicleRepo,
		clock:        clk,
		newReference: uuid.NewString,
		metrics:      m,
		logger:       logger,
	}
}

// Pay оплачивает последний PENDING comprobante автомобиля.
// Сначала дописывается платеж, затем comprobante переводится в PAID.
// Одновременные вызовы выполняются по очереди, на один comprobante приходится один платеж
func (s *Service) Pay(ctx context.Context, req *PayRequest) (*domain.PaymentRecord, error) {
	plate := domain.NormalizePlate(req.Plate)
	if !domain.ValidatePlate(plate) {
		return nil, domain.ErrInvalidLicensePlate
	}

	if err := req.Method.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	voucher, err := s.voucherRepo.FindLatestPending(ctx, plate)
	if err != nil {
		s.logger.Warn("No pending voucher to pay", map[string]interface{}{
			"plate": plate,
			"error": err.Error(),
		})
		return nil, err
	}

	now := s.clock.Now()
	if voucher.IsExpired(now) {
		s.logger.Warn("Voucher expired, payment rejected", map[string]interface{}{
			"plate":          plate,
			"voucher_number": voucher.Number,
			"expires_on":     voucher.ExpiresOn.Format(domain.DateLayout),
		})
		return nil, domain.ErrVoucherExpired
	}

	if err := s.ensureUnpaid(ctx, voucher); err != nil {
		return nil, err
	}

	payerID, payerName, err := s.resolvePayer(ctx, plate, req)
	if err != nil {
		return nil, err
	}

	reference, err := s.reference(req)
	if err != nil {
		return nil, err
	}

	payment := &domain.PaymentRecord{
		VoucherNumber: voucher.Number,
		Plate:         plate,
		PaidAt:        now.Truncate(time.Minute),
		Amount:        voucher.Total,
		Method:        req.Method,
		Reference:     reference,
		PayerID:       payerID,
		PayerName:     payerName,
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		s.logger.Error("Failed to record payment", map[string]interface{}{
			"plate":          plate,
			"voucher_number": voucher.Number,
			"error":          err.Error(),
		})
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	// Платеж уже записан. Если статус не обновился, comprobante остается PENDING,
	// а финализация все равно увидит оплату по номеру автомобиля
	if err := s.voucherRepo.MarkPaid(ctx, voucher.Number); err != nil {
		s.logger.Error("Payment recorded but voucher status not updated", map[string]interface{}{
			"plate":          plate,
			"voucher_number": voucher.Number,
			"error":          err.Error(),
		})
		return nil, fmt.Errorf("failed to mark voucher paid: %w", err)
	}

	s.metrics.ObservePayment(req.Method.String(), payment.Amount)
	s.logger.Info("Payment applied", map[string]interface{}{
		"plate":          plate,
		"voucher_number": voucher.Number,
		"amount":         domain.FormatAmount(payment.Amount),
		"method":         req.Method.String(),
	})

	return payment, nil
}

// FindByPlate возвращает платежи автомобиля
func (s *Service) FindByPlate(ctx context.Context, plate string) ([]*domain.PaymentRecord, error) {
	return s.paymentRepo.ListByPlate(ctx, domain.NormalizePlate(plate))
}

// ExistsForPlate проверяет, был ли хоть один платеж
func (s *Service) ExistsForPlate(ctx context.Context, plate string) (bool, error) {
	return s.paymentRepo.ExistsForPlate(ctx, domain.NormalizePlate(plate))
}

// ensureUnpaid отклоняет comprobante, по которому платеж уже записан.
// Если прошлая оплата не успела сменить статус, статус исправляется здесь
func (s *Service) ensureUnpaid(ctx context.Context, voucher *domain.Voucher) error {
	existing, err := s.paymentRepo.GetByVoucher(ctx, voucher.Number)
	if errors.Is(err, domain.ErrPaymentNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check payment: %w", err)
	}

	s.logger.Warn("Voucher already has a payment, status repaired", map[string]interface{}{
		"plate":          voucher.Plate,
		"voucher_number": voucher.Number,
		"paid_at":        existing.PaidAt.Format(domain.DateTimeLayout),
	})
	if err := s.voucherRepo.MarkPaid(ctx, voucher.Number); err != nil {
		return fmt.Errorf("failed to mark voucher paid: %w", err)
	}
	return domain.ErrVoucherAlreadyPaid
}

func (s *Service) resolvePayer(ctx context.Context, plate string, req *PayRequest) (string, string, error) {
	payerID := strings.TrimSpace(req.PayerID)
	payerName := domain.CollapseSpaces(req.PayerName)

	if payerID == "" || payerName == "" {
		owner, err := s.vehicleRepo.GetByPlate(ctx, plate)
		if err != nil {
			return "", "", fmt.Errorf("failed to get vehicle: %w", err)
		}
		if payerID == "" {
			payerID = owner.NationalID
		}
		if payerName == "" {
			payerName = owner.OwnerName
		}
	}

	if err := domain.ValidateNationalID(payerID); err != nil {
		return "", "", err
	}
	if err := domain.ValidateOwnerName(payerName); err != nil {
		return "", "", domain.ErrInvalidPayerName
	}
	return payerID, payerName, nil
}

func (s *Service) reference(req *PayRequest) (string, error) {
	if req.Method == domain.PaymentCash {
		return domain.CashReference, nil
	}

	ref := strings.TrimSpace(req.Reference)
	if ref == "" {
		return s.newReference(), nil
	}
	if strings.ContainsAny(ref, "|\r\n") {
		return "", domain.ErrInvalidReference
	}
	return ref, nil
}
