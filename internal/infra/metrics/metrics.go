package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "publish_runs_total",
		Help: "Количество прогонов по итогу (delivered/skipped_no_post/skipped_duplicate/failed)",
	}, []string{"outcome"})

	SelectionReasonTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "selection_reason_total",
		Help: "Причины выбора каноничного поста",
	}, []string{"reason"})

	RunDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "publish_run_duration_seconds",
		Help:    "Длительность одного прогона",
		Buckets: prometheus.DefBuckets,
	})

	SendErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sender_errors_total",
		Help: "Ошибки доставки в чат",
	})

	ImageFetchErrorsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "image_fetch_errors_total",
		Help: "Ошибки скачивания картинок (не фатальные)",
	})

	NetworkRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "network_request_duration_seconds",
		Help:    "Длительность сетевых запросов",
		Buckets: prometheus.DefBuckets,
	}, []string{"component", "operation", "status"})

	NetworkRequestTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "network_request_total",
		Help: "Количество сетевых запросов",
	}, []string{"component", "operation", "status"})
)

// MustRegister регистрирует метрики.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		RunsTotal,
		SelectionReasonTotal,
		RunDurationSeconds,
		SendErrorsTotal,
		ImageFetchErrorsTotal,
		NetworkRequestDuration,
		NetworkRequestTotal,
	)
}

// ObserveNetworkRequest записывает длительность и статус сетевого запроса.
func ObserveNetworkRequest(component, operation string, start time.Time, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	duration := time.Since(start).Seconds()
	NetworkRequestDuration.WithLabelValues(component, operation, status).Observe(duration)
	NetworkRequestTotal.WithLabelValues(component, operation, status).Inc()
}
