package postgres

import (
	"context"
	"errors"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type paymentRepository struct {
	db *pgxpool.Pool
}

func NewPaymentRepository(db *pgxpool.Pool) repository.PaymentRepository {
	return &paymentRepository{db: db}
}

const paymentColumns = `voucher_number, plate, paid_at, amount, method, reference, payer_id, payer_name`

func (r *paymentRepository) Create(ctx context.Context, payment *domain.PaymentRecord) error {
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (voucher_number) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query,
		payment.VoucherNumber,
		payment.Plate,
		payment.PaidAt,
		payment.Amount,
		int(payment.Method),
		payment.Reference,
		payment.PayerID,
		payment.PayerName,
	)
	if err != nil {
		return domain.StorageError("insert payment", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrVoucherAlreadyPaid
	}

	return nil
}

func (r *paymentRepository) GetByVoucher(ctx context.Context, voucherNumber string) (*domain.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE voucher_number = $1 ORDER BY id LIMIT 1`

	payment, err := scanPayment(r.db.QueryRow(ctx, query, voucherNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, domain.StorageError("select payment", err)
	}

	return payment, nil
}

func (r *paymentRepository) ExistsForPlate(ctx context.Context, plate string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM payments WHERE plate = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, plate).Scan(&exists); err != nil {
		return false, domain.StorageError("check payment", err)
	}

	return exists, nil
}

func (r *paymentRepository) ListByPlate(ctx context.Context, plate string) ([]*domain.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE plate = $1 ORDER BY id`

	rows, err := r.db.Query(ctx, query, plate)
	if err != nil {
		return nil, domain.StorageError("list payments", err)
	}
	defer rows.Close()

	var payments []*domain.PaymentRecord
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, domain.StorageError("scan payment", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.StorageError("list payments", err)
	}

	return payments, nil
}

func scanPayment(row pgx.Row) (*domain.PaymentRecord, error) {
	var (
		payment domain.PaymentRecord
		method  int
	)

	err := row.Scan(
		&payment.VoucherNumber,
		&payment.Plate,
		&payment.PaidAt,
		&payment.Amount,
		&method,
		&payment.Reference,
		&payment.PayerID,
		&payment.PayerName,
	)
	if err != nil {
		return nil, err
	}

	payment.Method = domain.PaymentMethod(method)
	return &payment, nil
}
