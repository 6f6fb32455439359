package flatfile

import (
	"context"
	"strings"
	"time"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/repository"
)

// VoucherRepository - реестр comprobantes:
// plate|voucherNumber|ownerName|type|subtype|issueDate|expiryDate|total|status
type VoucherRepository struct {
	ledger *Ledger
}

var _ repository.VoucherRepository = (*VoucherRepository)(nil)

func NewVoucherRepository(ledger *Ledger) *VoucherRepository {
	return &VoucherRepository{ledger: ledger}
}

func (r *VoucherRepository) Create(ctx context.Context, voucher *domain.Voucher) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.ledger.Append(encodeVoucher(voucher))
}

func (r *VoucherRepository) GetByNumber(ctx context.Context, number string) (*domain.Voucher, error) {
	vouchers, err := r.scan(ctx, func(v *domain.Voucher) bool { return v.Number == number })
	if err != nil {
		return nil, err
	}
	if len(vouchers) == 0 {
		return nil, domain.ErrVoucherNotFound
	}
	return vouchers[len(vouchers)-1], nil
}

// FindLatestPending возвращает последнюю по порядку в файле запись PENDING
func (r *VoucherRepository) FindLatestPending(ctx context.Context, plate string) (*domain.Voucher, error) {
	vouchers, err := r.scan(ctx, func(v *domain.Voucher) bool {
		return v.Plate == plate && v.Status == domain.VoucherPending
	})
	if err != nil {
		return nil, err
	}
	if len(vouchers) == 0 {
		return nil, domain.ErrNoPendingVoucher
	}
	return vouchers[len(vouchers)-1], nil
}

func (r *VoucherRepository) ListByPlate(ctx context.Context, plate string) ([]*domain.Voucher, error) {
	return r.scan(ctx, func(v *domain.Voucher) bool { return v.Plate == plate })
}

func (r *VoucherRepository) List(ctx context.Context) ([]*domain.Voucher, error) {
	return r.scan(ctx, func(*domain.Voucher) bool { return true })
}

// MarkPaid перезаписывает реестр, меняя статус только у совпавших записей
func (r *VoucherRepository) MarkPaid(ctx context.Context, number string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.ledger.Rewrite(func(lines []string) ([]string, error) {
		found := false
		out := make([]string, len(lines))
		for i, line := range lines {
			out[i] = line
			if voucherNumber(line) != number {
				continue
			}
			found = true
			out[i] = withVoucherStatus(line, domain.VoucherPaid)
		}
		if !found {
			return nil, domain.ErrVoucherNotFound
		}
		return out, nil
	})
}

// ExpireOverdue сохраняет EXPIRED за один проход перезаписи
func (r *VoucherRepository) ExpireOverdue(ctx context.Context, now time.Time) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	expired := 0
	err := r.ledger.Rewrite(func(lines []string) ([]string, error) {
		out := make([]string, len(lines))
		for i, line := range lines {
			out[i] = line
			v, err := decodeVoucher(line)
			if err != nil {
				continue
			}
			if v.Status == domain.VoucherPending && v.IsExpired(now) {
				out[i] = withVoucherStatus(line, domain.VoucherExpired)
				expired++
			}
		}
		return out, nil
	})
	if err != nil {
		return 0, err
	}
	return expired, nil
}

// scan разбирает реестр и возвращает подходящие записи в порядке файла.
// Поврежденные строки пропускаются
func (r *VoucherRepository) scan(ctx context.Context, match func(*domain.Voucher) bool) ([]*domain.Voucher, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines, err := r.ledger.Lines()
	if err != nil {
		return nil, err
	}

	var vouchers []*domain.Voucher
	for _, line := range lines {
		v, err := decodeVoucher(line)
		if err != nil {
			continue
		}
		if match(v) {
			vouchers = append(vouchers, v)
		}
	}
	return vouchers, nil
}

func voucherNumber(line string) string {
	f := strings.Split(line, pipeSep)
	if len(f) != voucherFields {
		return ""
	}
	return f[voucherNumberIdx]
}
