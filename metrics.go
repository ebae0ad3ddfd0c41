package jsonwebtoken

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "jsonwebtoken"

type metrics struct {
	issued    *prometheus.CounterVec
	validated *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// newMetrics registers the collectors with reg. Processors sharing a registerer
// share collectors. A nil reg leaves them unregistered.
func newMetrics(reg prometheus.Registerer) *metrics {
	m := &metrics{
		issued: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "tokens_issued_total",
			Help:      "Tokens signed, by algorithm.",
		}, []string{"alg"}),
		validated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "tokens_validated_total",
			Help:      "Tokens checked, by algorithm and result (valid, invalid or error).",
		}, []string{"alg", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "operation_duration_seconds",
			Help:      "Time spent signing or validating a token.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
		}, []string{"op"}),
	}
	if reg == nil {
		return m
	}

	m.issued = register(reg, m.issued)
	m.validated = register(reg, m.validated)
	m.duration = register(reg, m.duration)
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing
			}
		}
	}
	return c
}

func (m *metrics) observe(op string, start time.Time) {
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

const (
	resultValid   = "valid"
	resultInvalid = "invalid"
	resultError   = "error"
)
