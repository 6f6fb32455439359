package flatfile

import (
	"context"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/repository"
)

// PaymentRepository - реестр платежей:
// voucherNumber|plate|paymentDate|amount|paymentMethod|reference|payerId|payerName
type PaymentRepository struct {
	ledger *Ledger
}

var _ repository.PaymentRepository = (*PaymentRepository)(nil)

func NewPaymentRepository(ledger *Ledger) *PaymentRepository {
	return &PaymentRepository{ledger: ledger}
}

// Create дописывает платеж, если по этому comprobante платежа еще нет
func (r *PaymentRepository) Create(ctx context.Context, payment *domain.PaymentRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.ledger.AppendChecked(encodePayment(payment), func(lines []string) error {
		for _, line := range lines {
			p, err := decodePayment(line)
			if err != nil {
				continue
			}
			if p.VoucherNumber == payment.VoucherNumber {
				return domain.ErrVoucherAlreadyPaid
			}
		}
		return nil
	})
}

func (r *PaymentRepository) GetByVoucher(ctx context.Context, voucherNumber string) (*domain.PaymentRecord, error) {
	payments, err := r.scan(ctx, func(p *domain.PaymentRecord) bool { return p.VoucherNumber == voucherNumber })
	if err != nil {
		return nil, err
	}
	if len(payments) == 0 {
		return nil, domain.ErrPaymentNotFound
	}
	return payments[0], nil
}

func (r *PaymentRepository) ExistsForPlate(ctx context.Context, plate string) (bool, error) {
	payments, err := r.ListByPlate(ctx, plate)
	if err != nil {
		return false, err
	}
	return len(payments) > 0, nil
}

func (r *PaymentRepository) ListByPlate(ctx context.Context, plate string) ([]*domain.PaymentRecord, error) {
	return r.scan(ctx, func(p *domain.PaymentRecord) bool { return p.Plate == plate })
}

func (r *PaymentRepository) scan(ctx context.Context, match func(*domain.PaymentRecord) bool) ([]*domain.PaymentRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines, err := r.ledger.Lines()
	if err != nil {
		return nil, err
	}

	var payments []*domain.PaymentRecord
	for _, line := range lines {
		p, err := decodePayment(line)
		if err != nil {
			continue
		}
		if match(p) {
			payments = append(payments, p)
		}
	}
	return payments, nil
}
