package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type voucherRepository struct {
	db *pgxpool.Pool
}

func NewVoucherRepository(db *pgxpool.Pool) repository.VoucherRepository {
	return &voucherRepository{db: db}
}

const voucherColumns = `number, plate, owner_name, vehicle_type, vehicle_subtype, issued_at, expires_on, total, status`

func (r *voucherRepository) Create(ctx context.Context, voucher *domain.Voucher) error {
	query := `
		INSERT INTO vouchers (` + voucherColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		voucher.Number,
		voucher.Plate,
		voucher.OwnerName,
		string(voucher.Classification.Type()),
		string(voucher.Classification.Subtype()),
		voucher.IssuedAt,
		voucher.ExpiresOn,
		voucher.Total,
		int(voucher.Status),
	)
	if err != nil {
		return domain.StorageError("insert voucher", err)
	}

	return nil
}

func (r *voucherRepository) GetByNumber(ctx context.Context, number string) (*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE number = $1 ORDER BY id DESC LIMIT 1`

	voucher, err := scanVoucher(r.db.QueryRow(ctx, query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVoucherNotFound
		}
		return nil, domain.StorageError("select voucher", err)
	}

	return voucher, nil
}

func (r *voucherRepository) FindLatestPending(ctx context.Context, plate string) (*domain.Voucher, error) {
	query := `
		SELECT ` + voucherColumns + `
		FROM vouchers
		WHERE plate = $1 AND status = $2
		ORDER BY id DESC
		LIMIT 1
	`

	voucher, err := scanVoucher(r.db.QueryRow(ctx, query, plate, int(domain.VoucherPending)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNoPendingVoucher
		}
		return nil, domain.StorageError("select pending voucher", err)
	}

	return voucher, nil
}

func (r *voucherRepository) ListByPlate(ctx context.Context, plate string) ([]*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers WHERE plate = $1 ORDER BY id`
	return r.list(ctx, query, plate)
}

func (r *voucherRepository) List(ctx context.Context) ([]*domain.Voucher, error) {
	query := `SELECT ` + voucherColumns + ` FROM vouchers ORDER BY id`
	return r.list(ctx, query)
}

func (r *voucherRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.Voucher, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.StorageError("list vouchers", err)
	}
	defer rows.Close()

	var vouchers []*domain.Voucher
	for rows.Next() {
		voucher, err := scanVoucher(rows)
		if err != nil {
			return nil, domain.StorageError("scan voucher", err)
		}
		vouchers = append(vouchers, voucher)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.StorageError("list vouchers", err)
	}

	return vouchers, nil
}

func (r *voucherRepository) MarkPaid(ctx context.Context, number string) error {
	query := `UPDATE vouchers SET status = $2 WHERE number = $1`

	result, err := r.db.Exec(ctx, query, number, int(domain.VoucherPaid))
	if err != nil {
		return domain.StorageError("update voucher", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrVoucherNotFound
	}

	return nil
}

func (r *voucherRepository) ExpireOverdue(ctx context.Context, now time.Time) (int, error) {
	query := `UPDATE vouchers SET status = $1 WHERE status = $2 AND expires_on < $3`

	today := domain.TruncateToDay(now)
	result, err := r.db.Exec(ctx, query, int(domain.VoucherExpired), int(domain.VoucherPending), today)
	if err != nil {
		return 0, domain.StorageError("expire vouchers", err)
	}

	return int(result.RowsAffected()), nil
}

func scanVoucher(row pgx.Row) (*domain.Voucher, error) {
	var (
		voucher      domain.Voucher
		typ, subtype string
		status       int
	)

	err := row.Scan(
		&voucher.Number,
		&voucher.Plate,
		&voucher.OwnerName,
		&typ,
		&subtype,
		&voucher.IssuedAt,
		&voucher.ExpiresOn,
		&voucher.Total,
		&status,
	)
	if err != nil {
		return nil, err
	}

	voucher.Classification, err = domain.NewClassification(domain.VehicleType(typ), domain.VehicleSubtype(subtype))
	if err != nil {
		return nil, err
	}
	voucher.Status, err = domain.ParseVoucherStatus(status)
	if err != nil {
		return nil, err
	}

	return &voucher, nil
}
