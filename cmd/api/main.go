package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	deliveryHTTP "github.com/frontandrew/matricula/internal/delivery/http"
	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/pkg/clock"
	"github.com/frontandrew/matricula/internal/pkg/config"
	"github.com/frontandrew/matricula/internal/pkg/docnumber"
	"github.com/frontandrew/matricula/internal/pkg/jwt"
	"github.com/frontandrew/matricula/internal/pkg/logger"
	"github.com/frontandrew/matricula/internal/pkg/metrics"
	"github.com/frontandrew/matricula/internal/usecase/fee"
	"github.com/frontandrew/matricula/internal/usecase/inspection"
	"github.com/frontandrew/matricula/internal/usecase/matriculation"
	"github.com/frontandrew/matricula/internal/usecase/payment"
	"github.com/frontandrew/matricula/internal/usecase/vehicle"
	"github.com/frontandrew/matricula/internal/usecase/voucher"
)

func main() {
	// =========================================================================
	// Загрузка конфигурации
	// =========================================================================

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// Инициализация logger
	// =========================================================================

	log := logger.New(cfg.Logger.Level, cfg.Logger.Format, cfg.Logger.Output)
	logger.SetGlobalLogger(log)
	log.Info("Starting MATRICULA API server", map[string]interface{}{
		"version": "1.0.0",
		"storage": cfg.Storage.Driver,
	})

	// =========================================================================
	// Метрики
	// =========================================================================

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// =========================================================================
	// Хранилище
	// =========================================================================

	ctx := context.Background()
	repos, closeStorage, err := openStorage(ctx, cfg, m, log)
	if err != nil {
		closeStorage()
		log.Fatal("Failed to open storage", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer closeStorage()

	log.Info("Repositories initialized")

	// =========================================================================
	// Создание use case services
	// =========================================================================

	clk := clock.New()
	numbers := docnumber.New()

	schedule := fee.DefaultSchedule()
	schedule.FiscalYear = cfg.Matricula.EffectiveFiscalYear(clk.Now())

	limits := vehicle.Limits{
		FiscalYear: cfg.Matricula.FiscalYear,
		Assessed: domain.AssessedValueRange{
			Min: cfg.Matricula.MinAssessedValue,
			Max: cfg.Matricula.MaxAssessedValue,
		},
	}

	calculator := fee.NewCalculator(schedule, repos.vehicles, m, log)
	vehicleService := vehicle.NewService(repos.vehicles, limits, clk, m, log)
	voucherService := voucher.NewService(repos.vouchers, repos.vehicles, calculator, numbers, clk, cfg.Matricula.VoucherValidityDays, m, log)
	paymentService := payment.NewService(repos.payments, repos.vouchers, repos.vehicles, clk, m, log)
	inspectionService := inspection.NewService(repos.inspections, repos.vehicles, m, log)
	matriculationService := matriculation.NewService(
		repos.vehicles,
		repos.vouchers,
		repos.payments,
		repos.certificates,
		inspectionService,
		numbers,
		clk,
		cfg.Matricula.AllowReissue,
		m,
		log,
	)

	log.Info("Use case services initialized", map[string]interface{}{
		"fiscal_year":   schedule.FiscalYear,
		"allow_reissue": cfg.Matricula.AllowReissue,
	})

	// =========================================================================
	// Создание HTTP handlers и router
	// =========================================================================

	handlers := deliveryHTTP.Handlers{
		Vehicle:       deliveryHTTP.NewVehicleHandler(vehicleService, calculator, log),
		Voucher:       deliveryHTTP.NewVoucherHandler(voucherService, log),
		Payment:       deliveryHTTP.NewPaymentHandler(paymentService, log),
		Inspection:    deliveryHTTP.NewInspectionHandler(inspectionService, clk, log),
		Matriculation: deliveryHTTP.NewMatriculationHandler(matriculationService, log),
	}

	var tokenService *jwt.TokenService
	if cfg.JWT.Enabled {
		tokenService = jwt.NewTokenService(cfg.JWT.SecretKey, cfg.JWT.AccessExpiry)
		log.Info("JWT token service initialized")
	}

	router := deliveryHTTP.NewRouter(handlers, tokenService, registry, m, cfg, log)
	handler := router.Setup()

	log.Info("HTTP router configured")

	// =========================================================================
	// Создание HTTP сервера
	// =========================================================================

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// =========================================================================
	// Запуск сервера в goroutine
	// =========================================================================

	serverErrors := make(chan error, 1)

	go func() {
		log.Info("API server listening", map[string]interface{}{
			"address": srv.Addr,
		})
		serverErrors <- srv.ListenAndServe()
	}()

	// =========================================================================
	// Graceful shutdown
	// =========================================================================

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server error", map[string]interface{}{
				"error": err.Error(),
			})
		}

	case sig := <-shutdown:
		log.Info("Shutdown signal received", map[string]interface{}{
			"signal": sig.String(),
		})

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Graceful shutdown failed", map[string]interface{}{
				"error": err.Error(),
			})

			// Принудительное закрытие
			if err := srv.Close(); err != nil {
				log.Error("Failed to close server", map[string]interface{}{
					"error": err.Error(),
				})
			}
		}

		log.Info("Server stopped gracefully")
	}
}
