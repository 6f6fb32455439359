package flatfile

import (
	"context"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/repository"
)

// VehicleRepository - реестр автомобилей: plate,nationalId,ownerName,type,subtype,modelYear,assessedValue,displacementCc
type VehicleRepository struct {
	ledger *Ledger
}

var _ repository.VehicleRepository = (*VehicleRepository)(nil)

func NewVehicleRepository(ledger *Ledger) *VehicleRepository {
	return &VehicleRepository{ledger: ledger}
}

// Create дописывает строку, если номер еще не зарегистрирован
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.VehicleRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.ledger.AppendChecked(encodeVehicle(vehicle), func(lines []string) error {
		for _, line := range lines {
			if vehiclePlate(line) == vehicle.Plate {
				return domain.ErrVehicleAlreadyExists
			}
		}
		return nil
	})
}

func (r *VehicleRepository) Exists(ctx context.Context, plate string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	lines, err := r.ledger.Lines()
	if err != nil {
		return false, err
	}
	for _, line := range lines {
		if vehiclePlate(line) == plate {
			return true, nil
		}
	}
	return false, nil
}

func (r *VehicleRepository) GetByPlate(ctx context.Context, plate string) (*domain.VehicleRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines, err := r.ledger.Lines()
	if err != nil {
		return nil, err
	}
	for _, line := range lines {
		if vehiclePlate(line) != plate {
			continue
		}
		vehicle, err := decodeVehicle(line)
		if err != nil {
			return nil, domain.StorageError("decode vehicle", err)
		}
		return vehicle, nil
	}
	return nil, domain.ErrVehicleNotFound
}

// List пропускает поврежденные строки
func (r *VehicleRepository) List(ctx context.Context) ([]*domain.VehicleRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	lines, err := r.ledger.Lines()
	if err != nil {
		return nil, err
	}

	vehicles := make([]*domain.VehicleRecord, 0, len(lines))
	for _, line := range lines {
		vehicle, err := decodeVehicle(line)
		if err != nil {
			continue
		}
		vehicles = append(vehicles, vehicle)
	}
	return vehicles, nil
}
