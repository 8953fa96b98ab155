package runner

import (
	"time"

	"github.com/smauto-dev/engine/domain/automation"
)

// Metrics receives runner lifecycle events. pkg/metrics implements this
// against Prometheus collectors; tests use the noop default.
type Metrics interface {
	ObserveState(automationName string, state automation.State)
	ObserveConditionEval(automationName string, d time.Duration, triggered bool)
	IncTrigger(automationName string)
}

type noopMetrics struct{}

func (noopMetrics) ObserveState(string, automation.State)            {}
func (noopMetrics) ObserveConditionEval(string, time.Duration, bool) {}
func (noopMetrics) IncTrigger(string)                                 {}

// NoopMetrics discards every event.
var NoopMetrics Metrics = noopMetrics{}
