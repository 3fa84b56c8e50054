package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dispatch"

// Результаты запроса ленты
const (
	FetchOK          = "ok"
	FetchNotModified = "not_modified"
	FetchError       = "error"
)

// Результаты отправки
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics - метрики трекера и диспетчера
type Metrics struct {
	FeedFetches       *prometheus.CounterVec
	Transitions       *prometheus.CounterVec
	ActiveAssignments prometheus.Gauge
	RunDuration       prometheus.Histogram
	Notifications     *prometheus.CounterVec
	EarlyAlerts       prometheus.Counter
	IncidentErrors    prometheus.Counter
	PlugPulses        *prometheus.CounterVec
	PollBackoff       prometheus.Gauge
}

// New создает метрики и регистрирует их в reg
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		FeedFetches: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_fetch_total",
			Help:      "Feed fetch attempts by result",
		}, []string{"result"}),
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tracker_transitions_total",
			Help:      "Assignment transitions by kind",
		}, []string{"kind"}),
		ActiveAssignments: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "tracker_active_assignments",
			Help:      "Live (incident, unit) assignments",
		}),
		RunDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "tracker_run_duration_seconds",
			Help:      "Duration of completed runs",
			Buckets:   prometheus.LinearBuckets(300, 900, 16), // от 5 минут с шагом 15
		}),
		Notifications: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Outbound notifications by kind and result",
		}, []string{"kind", "result"}),
		EarlyAlerts: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "early_alerts_total",
			Help:      "Geofence pre-alerts emitted",
		}),
		IncidentErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "incident_errors_total",
			Help:      "Incidents whose processing failed",
		}),
		PlugPulses: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plug_pulses_total",
			Help:      "Smart plug pulses by result",
		}, []string{"result"}),
		PollBackoff: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "poll_backoff_seconds",
			Help:      "Current poll delay before jitter",
		}),
	}
}

// Noop - метрики без регистрации
func Noop() *Metrics {
	return New(prometheus.NewRegistry())
}
