package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики приложения. Регистрируются в DefaultRegisterer,
// отдаются монитором на /metrics.
var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glik_http_requests_total",
		Help: "Количество HTTP-запросов по методу, пути и коду ответа",
	}, []string{"method", "path", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "glik_http_request_duration_seconds",
		Help:    "Длительность HTTP-запросов",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	LeasesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glik_leases_created_total",
		Help: "Количество созданных договоров",
	})

	LeaseStatusUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glik_lease_status_updates_total",
		Help: "Количество смен статусов договоров по новому статусу",
	}, []string{"status"})

	PaymentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glik_payments_created_total",
		Help: "Количество зарегистрированных платежей",
	})

	PaymentStatusUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glik_payment_status_updates_total",
		Help: "Количество смен статусов платежей по новому статусу",
	}, []string{"status"})

	DelaysRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glik_payment_delays_recorded_total",
		Help: "Количество зафиксированных просрочек",
	})
)
