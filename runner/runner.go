// Package runner implements the Automation Runner: the per-automation
// control loop that polls the after-dependency barrier, paces condition
// evaluation at the automation's configured frequency, and dispatches
// actions on trigger.
package runner

import (
	"context"
	"time"

	"github.com/smauto-dev/engine/action"
	"github.com/smauto-dev/engine/condeval"
	"github.com/smauto-dev/engine/domain/automation"
	"github.com/smauto-dev/engine/pkg/logger"
	"github.com/smauto-dev/engine/runtime/lifecycle"
	"github.com/smauto-dev/engine/runtime/observability"
)

// barrierPollInterval is the fixed cadence at which an IDLE runner checks
// its after-barrier, independent of its own evaluation frequency.
const barrierPollInterval = time.Second

// settleDelay is how long a runner stays in EXITED_SUCCESS before
// re-entering IDLE: a fixed short pause, independent of the automation's
// own tick.
const settleDelay = 10 * time.Millisecond

// Runner drives one Automation's state machine.
type Runner struct {
	*lifecycle.ServiceBase

	automation *automation.Automation
	predicate  condeval.Predicate
	rendered   string // human-readable condition, for trigger logs/spans
	dispatcher *action.Dispatcher
	registry   Registry
	tracer     observability.Tracer
	metrics    Metrics
	log        *logger.Logger
}

// Option configures optional Runner collaborators.
type Option func(*Runner)

// WithTracer overrides the default NoopTracer.
func WithTracer(t observability.Tracer) Option {
	return func(r *Runner) { r.tracer = t }
}

// WithMetrics overrides the default NoopMetrics.
func WithMetrics(m Metrics) Option {
	return func(r *Runner) { r.metrics = m }
}

// New builds a Runner for a, evaluating pred and dispatching through d.
// rendered is the condition's human-readable rendering (condeval.Compiler's
// Compile return), logged and attached to spans on every trigger. reg
// resolves this automation's after/starts/stops peers.
func New(a *automation.Automation, pred condeval.Predicate, rendered string, d *action.Dispatcher, reg Registry, log *logger.Logger, opts ...Option) *Runner {
	r := &Runner{
		ServiceBase: lifecycle.NewServiceBase(a.Name),
		automation:  a,
		predicate:   pred,
		rendered:    rendered,
		dispatcher:  d,
		registry:    reg,
		tracer:      observability.NoopTracer,
		metrics:     NoopMetrics,
		log:         log,
	}
	r.MarkStarted()
	return r
}

// Run drives the automation's state machine until ctx is canceled. It never
// returns an error: evaluation and dispatch failures are logged and folded
// into the state machine per the spec's failure semantics, never raised to
// the caller.
func (r *Runner) Run(ctx context.Context) error {
	tick := time.Duration(float64(time.Second) / r.automation.EffectiveFreqHz())
	if tick <= 0 {
		tick = time.Second
	}

	for {
		select {
		case <-ctx.Done():
			r.MarkStopped()
			return nil
		default:
		}

		switch r.automation.State() {
		case automation.StateIdle:
			r.waitForBarrier(ctx)
		case automation.StateRunning:
			r.evaluateTick(ctx)
			sleep(ctx, tick)
		case automation.StateExitedSuccess:
			sleep(ctx, settleDelay)
			r.automation.SetState(automation.StateIdle)
			r.metrics.ObserveState(r.automation.Name, automation.StateIdle)
		case automation.StateExitedFailure:
			// Reserved: §4.C swallows every evaluation error to false, so
			// this state is never entered in practice.
			r.MarkFailed(nil)
			return nil
		}
	}
}

// waitForBarrier blocks (polling at barrierPollInterval) until every
// automation in After[] is not RUNNING, then transitions IDLE->RUNNING.
func (r *Runner) waitForBarrier(ctx context.Context) {
	if r.registry.BarrierClear(r.automation.After) {
		if r.automation.CompareAndSwapState(automation.StateIdle, automation.StateRunning) {
			r.metrics.ObserveState(r.automation.Name, automation.StateRunning)
		}
		return
	}
	sleep(ctx, barrierPollInterval)
}

// evaluateTick evaluates the condition once; on a successful trigger it
// dispatches actions, applies starts/stops, and handles the
// checkOnce/continuous latch.
func (r *Runner) evaluateTick(ctx context.Context) {
	if !r.automation.Enabled() {
		return
	}

	spanCtx, finishSpan := r.tracer.StartSpan(ctx, "automation.evaluate", map[string]string{
		"automation": r.automation.Name,
		"condition":  r.rendered,
	})

	start := time.Now()
	triggered := r.predicate()
	r.metrics.ObserveConditionEval(r.automation.Name, time.Since(start), triggered)

	if !triggered {
		finishSpan(nil)
		return
	}

	r.log.WithField("automation", r.automation.Name).
		WithField("condition", r.rendered).
		Info("automation triggered")

	r.metrics.IncTrigger(r.automation.Name)
	err := r.dispatcher.Dispatch(spanCtx, r.automation.Actions)
	if err != nil {
		r.log.WithField("automation", r.automation.Name).
			WithField("error", err).
			Warn("action dispatch reported a failure; trigger still counts as attempted")
	}
	finishSpan(err)

	r.registry.Enable(r.automation.Starts)
	r.registry.Disable(r.automation.Stops)

	if r.automation.CheckOnce || !r.automation.Continuous {
		r.automation.Disable()
	}

	r.automation.CompareAndSwapState(automation.StateRunning, automation.StateExitedSuccess)
	r.metrics.ObserveState(r.automation.Name, automation.StateExitedSuccess)
}

// sleep blocks for d or until ctx is canceled, whichever comes first.
func sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
