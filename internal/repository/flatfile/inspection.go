package flatfile

import (
	"context"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/repository"
)

// InspectionRepository - реестр проверок: plate,inspectionDate,approved,observations
type InspectionRepository struct {
	ledger *Ledger
}

var _ repository.InspectionRepository = (*InspectionRepository)(nil)

func NewInspectionRepository(ledger *Ledger) *InspectionRepository {
	return &InspectionRepository{ledger: ledger}
}

func (r *InspectionRepository) Create(ctx context.Context, inspection *domain.InspectionRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.ledger.Append(encodeInspection(inspection))
}

func (r *InspectionRepository) HasApproved(ctx context.Context, plate string) (bool, error) {
	inspections, err := r.ListByPlate(ctx, plate)
	if err != nil {
		return false, err
	}
	for _, i := range inspections {
		if i.Approved {
			return true, nil
		}
	}
	return false, nil
}

func (r *InspectionRepository) ListByPlate(ctx context.Context, plate string) ([]*domain.InspectionRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines, err := r.ledger.Lines()
	if err != nil {
		return nil, err
	}

	var inspections []*domain.InspectionRecord
	for _, line := range lines {
		i, err := decodeInspection(line)
		if err != nil {
			continue
		}
		if i.Plate == plate {
			inspections = append(inspections, i)
		}
	}
	return inspections, nil
}
