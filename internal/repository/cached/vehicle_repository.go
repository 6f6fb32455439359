package cached

import (
	"context"
	"time"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/pkg/logger"
	"github.com/frontandrew/matricula/internal/pkg/redis"
	"github.com/frontandrew/matricula/internal/repository"
)

const vehicleCachePrefix = "vehicle:"

// DefaultVehicleTTL - записи неизменяемы, поэтому TTL только ограничивает память
const DefaultVehicleTTL = 24 * time.Hour

// VehicleRepository добавляет read-through кэш к реестру автомобилей.
// Кэшируются только найденные записи, отсутствие номера не кэшируется
type VehicleRepository struct {
	repo   repository.VehicleRepository
	cache  redis.Cache
	ttl    time.Duration
	logger logger.Logger
}

var _ repository.VehicleRepository = (*VehicleRepository)(nil)

// NewVehicleRepository создает кэшируемый реестр автомобилей
func NewVehicleRepository(repo repository.VehicleRepository, cache redis.Cache, ttl time.Duration, log logger.Logger) *VehicleRepository {
	if ttl <= 0 {
		ttl = DefaultVehicleTTL
	}
	return &VehicleRepository{
		repo:   repo,
		cache:  cache,
		ttl:    ttl,
		logger: log,
	}
}

// Create пишет в реестр и сразу кладет запись в кэш
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.VehicleRecord) error {
	if err := r.repo.Create(ctx, vehicle); err != nil {
		return err
	}

	r.store(ctx, vehicle)
	return nil
}

func (r *VehicleRepository) Exists(ctx context.Context, plate string) (bool, error) {
	if _, ok := r.lookup(ctx, plate); ok {
		return true, nil
	}
	return r.repo.Exists(ctx, plate)
}

func (r *VehicleRepository) GetByPlate(ctx context.Context, plate string) (*domain.VehicleRecord, error) {
	// 1. Проверяем кэш
	if vehicle, ok := r.lookup(ctx, plate); ok {
		return vehicle, nil
	}

	// 2. Cache miss - идем в реестр
	vehicle, err := r.repo.GetByPlate(ctx, plate)
	if err != nil {
		return nil, err
	}

	// 3. Сохраняем в кэш
	r.store(ctx, vehicle)
	return vehicle, nil
}

// List не кэшируется
func (r *VehicleRepository) List(ctx context.Context) ([]*domain.VehicleRecord, error) {
	return r.repo.List(ctx)
}

func (r *VehicleRepository) lookup(ctx context.Context, plate string) (*domain.VehicleRecord, bool) {
	var vehicle domain.VehicleRecord
	err := redis.GetJSON(ctx, r.cache, vehicleCachePrefix+plate, &vehicle)
	if err == nil {
		return &vehicle, true
	}

	// Сбой кэша не мешает работе, идем в реестр
	if !redis.IsMiss(err) {
		r.logger.Warn("vehicle cache read failed", map[string]interface{}{
			"plate": plate,
			"error": err.Error(),
		})
	}
	return nil, false
}

func (r *VehicleRepository) store(ctx context.Context, vehicle *domain.VehicleRecord) {
	if err := redis.SetJSON(ctx, r.cache, vehicleCachePrefix+vehicle.Plate, vehicle, r.ttl); err != nil {
		r.logger.Warn("vehicle cache write failed", map[string]interface{}{
			"plate": vehicle.Plate,
			"error": err.Error(),
		})
	}
}
