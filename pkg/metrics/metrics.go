// Package metrics provides Prometheus metrics collection for the engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus collectors the engine records against.
type Metrics struct {
	AutomationRuns       *prometheus.CounterVec
	AutomationState      *prometheus.GaugeVec
	ConditionEvalSeconds *prometheus.HistogramVec

	BrokerPublishTotal    *prometheus.CounterVec
	BrokerPublishSeconds  *prometheus.HistogramVec
	EntityMessagesTotal   *prometheus.CounterVec
	BufferSize            *prometheus.GaugeVec
}

// New creates a Metrics instance registered against the default registerer.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a Metrics instance registered against registerer.
// A nil registerer skips registration entirely, which test code uses to
// avoid colliding with other tests registering the same metric names.
func NewWithRegistry(registerer prometheus.Registerer) *Metrics {
	m := &Metrics{
		AutomationRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "automation_runs_total",
				Help: "Total automation trigger attempts by result",
			},
			[]string{"automation", "result"},
		),
		AutomationState: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "automation_state",
				Help: "Current automation state (0=IDLE 1=RUNNING 2=EXITED_SUCCESS 3=EXITED_FAILURE)",
			},
			[]string{"automation"},
		),
		ConditionEvalSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "condition_eval_duration_seconds",
				Help:    "Condition evaluation duration in seconds",
				Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"automation"},
		),

		BrokerPublishTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "broker_publish_total",
				Help: "Total broker publish attempts by result",
			},
			[]string{"broker", "result"},
		),
		BrokerPublishSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "broker_publish_duration_seconds",
				Help:    "Broker publish duration in seconds",
				Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"broker"},
		),
		EntityMessagesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "entity_messages_total",
				Help: "Total inbound messages applied to an entity's state",
			},
			[]string{"entity"},
		),
		BufferSize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "buffer_size",
				Help: "Current number of samples held in an attribute's history buffer",
			},
			[]string{"entity", "attribute"},
		),
	}

	if registerer != nil {
		registerer.MustRegister(
			m.AutomationRuns,
			m.AutomationState,
			m.ConditionEvalSeconds,
			m.BrokerPublishTotal,
			m.BrokerPublishSeconds,
			m.EntityMessagesTotal,
			m.BufferSize,
		)
	}

	return m
}

// StateIdle..StateExitedFailure are the gauge values automation_state
// exports, in the same order as automation.State's constants.
const (
	StateIdle           = 0
	StateRunning        = 1
	StateExitedSuccess  = 2
	StateExitedFailure  = 3
)
