package metrics

import (
	"time"

	"github.com/smauto-dev/engine/domain/automation"
)

// RunnerAdapter implements runner.Metrics against a *Metrics instance. It
// lives in this package rather than runner/ so runner never imports
// prometheus directly.
type RunnerAdapter struct {
	m *Metrics
}

// NewRunnerAdapter wraps m for consumption by the runner package.
func NewRunnerAdapter(m *Metrics) *RunnerAdapter {
	return &RunnerAdapter{m: m}
}

func (a *RunnerAdapter) ObserveState(automationName string, state automation.State) {
	a.m.AutomationState.WithLabelValues(automationName).Set(float64(state))
}

func (a *RunnerAdapter) ObserveConditionEval(automationName string, d time.Duration, triggered bool) {
	a.m.ConditionEvalSeconds.WithLabelValues(automationName).Observe(d.Seconds())
	result := "skipped"
	if triggered {
		result = "triggered"
	}
	a.m.AutomationRuns.WithLabelValues(automationName, result).Inc()
}

// IncTrigger is a no-op here: ObserveConditionEval already records the
// "triggered" outcome in automation_runs_total, and the runner calls both
// on every trigger. Kept to satisfy the runner.Metrics interface for
// callers that want a dedicated trigger counter without the eval timing.
func (a *RunnerAdapter) IncTrigger(string) {}
