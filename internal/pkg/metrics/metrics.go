package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics - метрики процесса матрикуляции
type Metrics struct {
	VehiclesRegistered  prometheus.Counter
	VouchersIssued      *prometheus.CounterVec
	VouchersExpired     prometheus.Counter
	PaymentsApplied     *prometheus.CounterVec
	PaymentAmount       prometheus.Counter
	InspectionsRecorded *prometheus.CounterVec
	CertificatesIssued  prometheus.Counter
	FinalizeRejected    *prometheus.CounterVec
	FeeTotal            prometheus.Histogram
	StorageLatency      *prometheus.HistogramVec
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// New регистрирует метрики в указанном реестре
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		VehiclesRegistered: f.NewCounter(prometheus.CounterOpts{
			Name: "matricula_vehicles_registered_total",
			Help: "Total number of registered vehicles",
		}),
		VouchersIssued: f.NewCounterVec(prometheus.CounterOpts{
			Name: "matricula_vouchers_issued_total",
			Help: "Total number of issued vouchers by vehicle type",
		}, []string{"type", "subtype"}),
		VouchersExpired: f.NewCounter(prometheus.CounterOpts{
			Name: "matricula_vouchers_expired_total",
			Help: "Total number of vouchers persisted as expired",
		}),
		PaymentsApplied: f.NewCounterVec(prometheus.CounterOpts{
			Name: "matricula_payments_total",
			Help: "Total number of applied payments by method",
		}, []string{"method"}),
		PaymentAmount: f.NewCounter(prometheus.CounterOpts{
			Name: "matricula_payments_amount_total",
			Help: "Sum of applied payments",
		}),
		InspectionsRecorded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "matricula_inspections_total",
			Help: "Total number of recorded inspections by result",
		}, []string{"result"}),
		CertificatesIssued: f.NewCounter(prometheus.CounterOpts{
			Name: "matricula_certificates_issued_total",
			Help: "Total number of issued certificates",
		}),
		FinalizeRejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "matricula_finalize_rejected_total",
			Help: "Finalization attempts rejected by unmet precondition",
		}, []string{"reason"}),
		FeeTotal: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "matricula_fee_total",
			Help:    "Distribution of computed fee totals",
			Buckets: []float64{50, 100, 150, 250, 500, 1000, 2500, 5000},
		}),
		StorageLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "matricula_storage_duration_seconds",
			Help:    "Duration of ledger operations",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5},
		}, []string{"ledger", "op"}),
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "matricula_http_requests_total",
			Help: "Total HTTP requests by method and status",
		}, []string{"method", "status"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "matricula_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

// Методы безопасны для nil, чтобы сервисы работали без метрик

func (m *Metrics) IncrementVehiclesRegistered() {
	if m != nil {
		m.VehiclesRegistered.Inc()
	}
}

func (m *Metrics) IncrementVouchersIssued(typ, subtype string) {
	if m != nil {
		m.VouchersIssued.WithLabelValues(typ, subtype).Inc()
	}
}

func (m *Metrics) AddVouchersExpired(n int) {
	if m != nil && n > 0 {
		m.VouchersExpired.Add(float64(n))
	}
}

func (m *Metrics) ObservePayment(method string, amount float64) {
	if m != nil {
		m.PaymentsApplied.WithLabelValues(method).Inc()
		m.PaymentAmount.Add(amount)
	}
}

func (m *Metrics) IncrementInspections(approved bool) {
	if m != nil {
		result := "rejected"
		if approved {
			result = "approved"
		}
		m.InspectionsRecorded.WithLabelValues(result).Inc()
	}
}

func (m *Metrics) IncrementCertificatesIssued() {
	if m != nil {
		m.CertificatesIssued.Inc()
	}
}

func (m *Metrics) IncrementFinalizeRejected(reason string) {
	if m != nil {
		m.FinalizeRejected.WithLabelValues(reason).Inc()
	}
}

func (m *Metrics) ObserveFeeTotal(total float64) {
	if m != nil {
		m.FeeTotal.Observe(total)
	}
}

// ObserveStorage записывает длительность операции над реестром
func (m *Metrics) ObserveStorage(ledger, op string, d time.Duration) {
	if m != nil {
		m.StorageLatency.WithLabelValues(ledger, op).Observe(d.Seconds())
	}
}

func (m *Metrics) ObserveHTTPRequest(method string, status int, d time.Duration) {
	if m != nil {
		m.HTTPRequestsTotal.WithLabelValues(method, statusClass(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(method).Observe(d.Seconds())
	}
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
