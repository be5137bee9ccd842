package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the alert service.
type Metrics struct {
	DispatchRuns    prometheus.Counter
	DispatchErrors  prometheus.Counter
	SMSSent         prometheus.Counter
	SMSFailed       prometheus.Counter
	Subscribes      prometheus.Counter
	Unsubscribes    prometheus.Counter
	DispatchSeconds prometheus.Histogram
}

// New registers all collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DispatchRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "alerts_dispatch_runs_total",
			Help: "Digest dispatch runs started (scheduled or manual).",
		}),
		DispatchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "alerts_dispatch_errors_total",
			Help: "Dispatch runs aborted before sending (registry read failures).",
		}),
		SMSSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "alerts_sms_sent_total",
			Help: "SMS messages accepted by the delivery provider.",
		}),
		SMSFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "alerts_sms_failed_total",
			Help: "SMS sends that failed or were skipped (provider unconfigured).",
		}),
		Subscribes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "alerts_subscribe_requests_total",
			Help: "Successful subscribe upserts.",
		}),
		Unsubscribes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "alerts_unsubscribe_requests_total",
			Help: "Successful unsubscribe deletes.",
		}),
		DispatchSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "alerts_dispatch_duration_seconds",
			Help:    "Wall time of a full dispatch run.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		m.DispatchRuns,
		m.DispatchErrors,
		m.SMSSent,
		m.SMSFailed,
		m.Subscribes,
		m.Unsubscribes,
		m.DispatchSeconds,
	)
	return m
}
