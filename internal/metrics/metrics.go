// Package metrics holds the Prometheus collectors shared by the
// synchronizers, the realtime listener and the session registry.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "himalink"

var (
	GatewayCallDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_call_duration_seconds",
		Help:      "Duration of remote gateway calls.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"operation", "status"})

	GatewayCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_calls_total",
		Help:      "Number of remote gateway calls.",
	}, []string{"operation", "status"})

	StaleResponsesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stale_responses_total",
		Help:      "Gateway responses discarded because a newer request was issued.",
	}, []string{"synchronizer"})

	RealtimeEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "realtime_events_total",
		Help:      "Insert notifications received, by relation and outcome.",
	}, []string{"relation", "outcome"})

	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Per-user sessions currently held in memory.",
	})
)

// MustRegister registers every collector with registerer.
func MustRegister(registerer prometheus.Registerer) {
	registerer.MustRegister(
		GatewayCallDuration,
		GatewayCallsTotal,
		StaleResponsesTotal,
		RealtimeEventsTotal,
		ActiveSessions,
	)
}

// ObserveGatewayCall records duration and outcome of one gateway call.
func ObserveGatewayCall(operation string, start time.Time, err error) {
	if operation == "" {
		operation = "unknown"
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	GatewayCallDuration.WithLabelValues(operation, status).Observe(time.Since(start).Seconds())
	GatewayCallsTotal.WithLabelValues(operation, status).Inc()
}

// IncStale counts one discarded response for the named synchronizer.
func IncStale(synchronizer string) {
	StaleResponsesTotal.WithLabelValues(synchronizer).Inc()
}

// IncRealtimeEvent counts one insert notification.
func IncRealtimeEvent(relation, outcome string) {
	RealtimeEventsTotal.WithLabelValues(relation, outcome).Inc()
}
