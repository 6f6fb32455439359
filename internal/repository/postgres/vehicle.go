package postgres

import (
	"context"
	"errors"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/repository"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type vehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

const vehicleColumns = `plate, national_id, owner_name, vehicle_type, vehicle_subtype, model_year, assessed_value, displacement_cc`

func (r *vehicleRepository) Create(ctx context.Context, vehicle *domain.VehicleRecord) error {
	query := `
		INSERT INTO vehicles (` + vehicleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (plate) DO NOTHING
	`

	result, err := r.db.Exec(ctx, query,
		vehicle.Plate,
		vehicle.NationalID,
		vehicle.OwnerName,
		string(vehicle.Classification.Type()),
		string(vehicle.Classification.Subtype()),
		vehicle.ModelYear,
		vehicle.AssessedValue,
		vehicle.DisplacementCC,
	)
	if err != nil {
		return domain.StorageError("insert vehicle", err)
	}

	if result.RowsAffected() == 0 {
		return domain.ErrVehicleAlreadyExists
	}

	return nil
}

func (r *vehicleRepository) Exists(ctx context.Context, plate string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM vehicles WHERE plate = $1)`

	var exists bool
	if err := r.db.QueryRow(ctx, query, plate).Scan(&exists); err != nil {
		return false, domain.StorageError("check vehicle", err)
	}

	return exists, nil
}

func (r *vehicleRepository) GetByPlate(ctx context.Context, plate string) (*domain.VehicleRecord, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE plate = $1`

	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query, plate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, domain.StorageError("select vehicle", err)
	}

	return vehicle, nil
}

func (r *vehicleRepository) List(ctx context.Context) ([]*domain.VehicleRecord, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, domain.StorageError("list vehicles", err)
	}
	defer rows.Close()

	var vehicles []*domain.VehicleRecord
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, domain.StorageError("scan vehicle", err)
		}
		vehicles = append(vehicles, vehicle)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.StorageError("list vehicles", err)
	}

	return vehicles, nil
}

func scanVehicle(row pgx.Row) (*domain.VehicleRecord, error) {
	var (
		vehicle      domain.VehicleRecord
		typ, subtype string
	)

	err := row.Scan(
		&vehicle.Plate,
		&vehicle.NationalID,
		&vehicle.OwnerName,
		&typ,
		&subtype,
		&vehicle.ModelYear,
		&vehicle.AssessedValue,
		&vehicle.DisplacementCC,
	)
	if err != nil {
		return nil, err
	}

	vehicle.Classification, err = domain.NewClassification(domain.VehicleType(typ), domain.VehicleSubtype(subtype))
	if err != nil {
		return nil, err
	}

	return &vehicle, nil
}
