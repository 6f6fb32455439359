package flatfile

import (
	"context"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/repository"
)

// CertificateRepository - реестр сертификатов:
// certificateNumber|plate|nationalId|ownerName|type|modelYear|assessedValue|displacementCc|subtype|issueDate|status
type CertificateRepository struct {
	ledger *Ledger
}

var _ repository.CertificateRepository = (*CertificateRepository)(nil)

func NewCertificateRepository(ledger *Ledger) *CertificateRepository {
	return &CertificateRepository{ledger: ledger}
}

func (r *CertificateRepository) Create(ctx context.Context, certificate *domain.CertificateRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.ledger.Append(encodeCertificate(certificate))
}

func (r *CertificateRepository) ListByPlate(ctx context.Context, plate string) ([]*domain.CertificateRecord, error) {
	return r.scan(ctx, func(c *domain.CertificateRecord) bool { return c.Plate == plate })
}

func (r *CertificateRepository) List(ctx context.Context) ([]*domain.CertificateRecord, error) {
	return r.scan(ctx, func(*domain.CertificateRecord) bool { return true })
}

func (r *CertificateRepository) scan(ctx context.Context, match func(*domain.CertificateRecord) bool) ([]*domain.CertificateRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines, err := r.ledger.Lines()
	if err != nil {
		return nil, err
	}

	var certificates []*domain.CertificateRecord
	for _, line := range lines {
		c, err := decodeCertificate(line)
		if err != nil {
			continue
		}
		if match(c) {
			certificates = append(certificates, c)
		}
	}
	return certificates, nil
}
