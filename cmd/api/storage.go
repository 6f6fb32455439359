package main

import (
	"context"
	"fmt"

	"github.com/frontandrew/matricula/internal/pkg/config"
	"github.com/frontandrew/matricula/internal/pkg/database"
	"github.com/frontandrew/matricula/internal/pkg/logger"
	"github.com/frontandrew/matricula/internal/pkg/metrics"
	"github.com/frontandrew/matricula/internal/pkg/redis"
	"github.com/frontandrew/matricula/internal/repository"
	"github.com/frontandrew/matricula/internal/repository/cached"
	"github.com/frontandrew/matricula/internal/repository/flatfile"
	"github.com/frontandrew/matricula/internal/repository/postgres"
)

// repositories - реестры, выбранные по STORAGE_DRIVER
type repositories struct {
	vehicles     repository.VehicleRepository
	vouchers     repository.VoucherRepository
	payments     repository.PaymentRepository
	inspections  repository.InspectionRepository
	certificates repository.CertificateRepository
}

// openStorage открывает реестры и возвращает функцию освобождения ресурсов
func openStorage(ctx context.Context, cfg *config.Config, m *metrics.Metrics, log logger.Logger) (*repositories, func(), error) {
	var (
		repos   *repositories
		closers []func()
	)
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.Storage.Driver {
	case config.StorageFile:
		store, err := flatfile.Open(cfg.Storage.DataDir, m)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to open ledgers: %w", err)
		}
		repos = &repositories{
			vehicles:     store.Vehicles,
			vouchers:     store.Vouchers,
			payments:     store.Payments,
			inspections:  store.Inspections,
			certificates: store.Certificates,
		}
		log.Info("Using flat-file ledgers", map[string]interface{}{
			"data_dir": cfg.Storage.DataDir,
		})

	case config.StoragePostgres:
		db, err := database.Connect(ctx, &cfg.Database)
		if err != nil {
			return nil, cleanup, fmt.Errorf("failed to connect to database: %w", err)
		}
		closers = append(closers, func() { database.Close(db) })

		if err := database.Migrate(ctx, db); err != nil {
			return nil, cleanup, err
		}

		repos = &repositories{
			vehicles:     postgres.NewVehicleRepository(db),
			vouchers:     postgres.NewVoucherRepository(db),
			payments:     postgres.NewPaymentRepository(db),
			inspections:  postgres.NewInspectionRepository(db),
			certificates: postgres.NewCertificateRepository(db),
		}
		log.Info("Connected to PostgreSQL", map[string]interface{}{
			"host":     cfg.Database.Host,
			"port":     cfg.Database.Port,
			"database": cfg.Database.Database,
		})

	default:
		return nil, cleanup, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	// Записи автомобилей не меняются после регистрации, поэтому их можно кэшировать
	if cfg.Redis.Enabled {
		client, err := redis.NewClient(ctx, redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Redis is not available, vehicle cache disabled", map[string]interface{}{
				"error":   err.Error(),
				"address": cfg.Redis.Address(),
			})
		} else {
			closers = append(closers, func() { _ = client.Close() })
			repos.vehicles = cached.NewVehicleRepository(repos.vehicles, client, cfg.Redis.CacheTTL, log)
			log.Info("Vehicle cache enabled", map[string]interface{}{
				"address": cfg.Redis.Address(),
				"ttl":     cfg.Redis.CacheTTL.String(),
			})
		}
	}

	return repos, cleanup, nil
}
