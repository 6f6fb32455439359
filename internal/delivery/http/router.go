package http

import (
	"net/http"

	"github.com/frontandrew/matricula/internal/delivery/http/middleware"
	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/pkg/config"
	"github.com/frontandrew/matricula/internal/pkg/logger"
	"github.com/frontandrew/matricula/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers - все HTTP обработчики сервиса
type Handlers struct {
	Vehicle       *VehicleHandler
	Voucher       *VoucherHandler
	Payment       *PaymentHandler
	Inspection    *InspectionHandler
	Matriculation *MatriculationHandler
}

// Router содержит все зависимости для HTTP роутера
type Router struct {
	handlers     Handlers
	tokenService middleware.TokenValidator
	gatherer     prometheus.Gatherer
	metrics      *metrics.Metrics
	config       *config.Config
	logger       logger.Logger
}

// NewRouter создает новый HTTP router.
// tokenService может быть nil, если проверка токенов выключена
func NewRouter(
	handlers Handlers,
	tokenService middleware.TokenValidator,
	gatherer prometheus.Gatherer,
	m *metrics.Metrics,
	config *config.Config,
	logger logger.Logger,
) *Router {
	return &Router{
		handlers:     handlers,
		tokenService: tokenService,
		gatherer:     gatherer,
		metrics:      m,
		config:       config,
		logger:       logger,
	}
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger, rt.metrics))
	r.Use(middleware.CORSMiddleware(middleware.CORSConfig{
		AllowedOrigins: rt.config.CORS.AllowedOrigins,
		AllowedMethods: rt.config.CORS.AllowedMethods,
		AllowedHeaders: rt.config.CORS.AllowedHeaders,
	}))

	// Health check endpoint (публичный)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	if rt.config.Metrics.Enabled && rt.gatherer != nil {
		r.Handle(rt.config.Metrics.Path, promhttp.HandlerFor(rt.gatherer, promhttp.HandlerOpts{}))
	}

	h := rt.handlers

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(rt.authenticate())

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", h.Vehicle.ListVehicles)
			r.With(middleware.RequireRole(domain.RoleOperator)).Post("/", h.Vehicle.RegisterVehicle)

			r.Route("/{plate}", func(r chi.Router) {
				r.Get("/", h.Vehicle.GetVehicle)
				r.Get("/vouchers", h.Voucher.ListVouchers)
				r.Get("/vouchers/active", h.Voucher.GetActiveVoucher)
				r.Get("/payments", h.Payment.ListPayments)
				r.Get("/inspections", h.Inspection.ListInspections)
				r.Get("/status", h.Matriculation.GetStatus)

				// Операции окна обслуживания
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(domain.RoleOperator))
					r.Post("/fees", h.Vehicle.QuoteFees)
					r.Post("/vouchers", h.Voucher.IssueVoucher)
					r.Post("/payments", h.Payment.Pay)
					r.Post("/matriculation", h.Matriculation.Finalize)
				})

				r.With(middleware.RequireRole(domain.RoleInspector)).Post("/inspections", h.Inspection.RecordInspection)
			})
		})

		r.Get("/fees/schedule", h.Vehicle.GetFeeSchedule)
		r.Get("/certificates", h.Matriculation.ListCertificates)
		r.Get("/reports/vouchers", h.Voucher.Report)

		r.Route("/vouchers", func(r chi.Router) {
			r.Get("/{number}", h.Voucher.GetVoucher)

			// Admin only endpoints
			r.With(middleware.RequireRole(domain.RoleAdmin)).Post("/expire", h.Voucher.ExpireOverdue)
		})
	})

	return r
}

// authenticate - проверка токенов или, если она выключена, локальный администратор
func (rt *Router) authenticate() func(http.Handler) http.Handler {
	if rt.config.JWT.Enabled && rt.tokenService != nil {
		return middleware.AuthMiddleware(rt.tokenService)
	}

	rt.logger.Warn("Operator authentication disabled, all requests run as admin")
	return middleware.StaticOperatorMiddleware(&domain.Operator{
		ID:   uuid.Nil,
		Name: "local",
		Role: domain.RoleAdmin,
	})
}
