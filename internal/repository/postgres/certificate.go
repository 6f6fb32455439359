package postgres

import (
	"context"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type certificateRepository struct {
	db *pgxpool.Pool
}

func NewCertificateRepository(db *pgxpool.Pool) repository.CertificateRepository {
	return &certificateRepository{db: db}
}

const certificateColumns = `number, plate, national_id, owner_name, vehicle_type, vehicle_subtype,
	model_year, assessed_value, displacement_cc, issued_on, status`

func (r *certificateRepository) Create(ctx context.Context, certificate *domain.CertificateRecord) error {
	query := `
		INSERT INTO certificates (` + certificateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.db.Exec(ctx, query,
		certificate.Number,
		certificate.Plate,
		certificate.NationalID,
		certificate.OwnerName,
		string(certificate.Classification.Type()),
		string(certificate.Classification.Subtype()),
		certificate.ModelYear,
		certificate.AssessedValue,
		certificate.DisplacementCC,
		certificate.IssuedOn,
		certificate.Status,
	)
	if err != nil {
		return domain.StorageError("insert certificate", err)
	}

	return nil
}

func (r *certificateRepository) ListByPlate(ctx context.Context, plate string) ([]*domain.CertificateRecord, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates WHERE plate = $1 ORDER BY id`
	return r.list(ctx, query, plate)
}

func (r *certificateRepository) List(ctx context.Context) ([]*domain.CertificateRecord, error) {
	query := `SELECT ` + certificateColumns + ` FROM certificates ORDER BY id`
	return r.list(ctx, query)
}

func (r *certificateRepository) list(ctx context.Context, query string, args ...interface{}) ([]*domain.CertificateRecord, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, domain.StorageError("list certificates", err)
	}
	defer rows.Close()

	var certificates []*domain.CertificateRecord
	for rows.Next() {
		c, err := scanCertificate(rows)
		if err != nil {
			return nil, domain.StorageError("scan certificate", err)
		}
		certificates = append(certificates, c)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.StorageError("list certificates", err)
	}

	return certificates, nil
}

func scanCertificate(row pgx.Row) (*domain.CertificateRecord, error) {
	var (
		c            domain.CertificateRecord
		typ, subtype string
	)

	err := row.Scan(
		&c.Number,
		&c.Plate,
		&c.NationalID,
		&c.OwnerName,
		&typ,
		&subtype,
		&c.ModelYear,
		&c.AssessedValue,
		&c.DisplacementCC,
		&c.IssuedOn,
		&c.Status,
	)
	if err != nil {
		return nil, err
	}

	c.Classification, err = domain.NewClassification(domain.VehicleType(typ), domain.VehicleSubtype(subtype))
	if err != nil {
		return nil, err
	}

	return &c, nil
}
