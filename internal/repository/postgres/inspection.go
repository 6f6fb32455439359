package postgres

import (
	"context"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

type inspectionRepository struct {
	db *pgxpool.Pool
}

func NewInspectionRepository(db *pgxpool.Pool) repository.InspectionRepository {
	return &inspectionRepository{db: db}
}

func (r *inspectionRepository) Create(ctx context.Context, inspection *domain.InspectionRecord) error {
	query := `
		INSERT INTO inspections (plate, inspected_on, approved, observations)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query,
		inspection.Plate,
		domain.TruncateToDay(inspection.InspectedOn),
		inspection.Approved,
		inspection.Observations,
	)
	if err != nil {
		return domain.StorageError("insert inspection", err)
	}

	return nil
}

// HasApproved - любая одобренная запись, а не только последняя
func (r *inspectionRepository) HasApproved(ctx context.Context, plate string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM inspections WHERE plate = $1 AND approved)`

	var approved bool
	if err := r.db.QueryRow(ctx, query, plate).Scan(&approved); err != nil {
		return false, domain.StorageError("check inspection", err)
	}

	return approved, nil
}

func (r *inspectionRepository) ListByPlate(ctx context.Context, plate string) ([]*domain.InspectionRecord, error) {
	query := `
		SELECT plate, inspected_on, approved, observations
		FROM inspections
		WHERE plate = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, plate)
	if err != nil {
		return nil, domain.StorageError("list inspections", err)
	}
	defer rows.Close()

	var inspections []*domain.InspectionRecord
	for rows.Next() {
		inspection := &domain.InspectionRecord{}
		err := rows.Scan(
			&inspection.Plate,
			&inspection.InspectedOn,
			&inspection.Approved,
			&inspection.Observations,
		)
		if err != nil {
			return nil, domain.StorageError("scan inspection", err)
		}
		inspections = append(inspections, inspection)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.StorageError("list inspections", err)
	}

	return inspections, nil
}
