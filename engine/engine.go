// Package engine wires the domain model into a running system: it
// deduplicates broker transports, opens entity subscriptions, compiles
// every automation's condition, and spawns one runner per automation. It
// is the only package that imports both domain/model and transport/runner,
// matching the startup sequence spec.md lays out.
package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/smauto-dev/engine/action"
	"github.com/smauto-dev/engine/condeval"
	"github.com/smauto-dev/engine/domain/broker"
	"github.com/smauto-dev/engine/domain/entity"
	"github.com/smauto-dev/engine/domain/model"
	"github.com/smauto-dev/engine/infrastructure/resilience"
	"github.com/smauto-dev/engine/infrastructure/utils"
	"github.com/smauto-dev/engine/pkg/logger"
	"github.com/smauto-dev/engine/pkg/metrics"
	"github.com/smauto-dev/engine/runner"
	"github.com/smauto-dev/engine/runtime/lifecycle"
	"github.com/smauto-dev/engine/runtime/observability"
	"github.com/smauto-dev/engine/store"
	"github.com/smauto-dev/engine/transport"
)

// Engine holds every live collaborator built from one model.Model.
type Engine struct {
	model      *model.Model
	store      *store.Store
	transports map[string]transport.Transport // keyed by broker name
	runners    []*runner.Runner
	gs         *lifecycle.GracefulShutdown
	hooks      *lifecycle.Hooks
	metrics    *metrics.Metrics
	tracer     observability.Tracer
	retryCfg   resilience.RetryConfig
	log        *logger.Logger
}

// Hooks exposes the engine's lifecycle hooks so callers can register
// post-start checks or pre-/post-stop cleanup (e.g. closing an external
// clock producer) without the engine package needing to know about them.
// Pre-start hooks run inside New, before this accessor is reachable, so a
// pre-start hook registered here never runs.
func (e *Engine) Hooks() *lifecycle.Hooks {
	return e.hooks
}

// Option configures optional Engine collaborators.
type Option func(*Engine)

// WithMetrics registers Prometheus collectors against m instead of discarding
// metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithTracer overrides the default NoopTracer used for every runner span.
func WithTracer(t observability.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// WithRetryConfig overrides the default broker connection retry budget
// (resilience.DefaultRetryConfig) used by every transport built in New.
func WithRetryConfig(cfg resilience.RetryConfig) Option {
	return func(e *Engine) { e.retryCfg = cfg }
}

// New builds every collaborator spec.md's startup sequence calls for:
// transports deduplicated by broker config, entity subscriptions, the
// built-in system_clock if the model omitted it, compiled conditions with
// their buffers pre-declared, and one runner per automation. It does not
// start any runner; call Run for that.
func New(ctx context.Context, m *model.Model, log *logger.Logger, opts ...Option) (*Engine, error) {
	e := &Engine{
		model:      m,
		transports: make(map[string]transport.Transport),
		gs:         lifecycle.NewGracefulShutdown(),
		hooks:      lifecycle.NewHooks(),
		tracer:     observability.NoopTracer,
		retryCfg:   resilience.DefaultRetryConfig(),
		log:        log,
	}
	for _, opt := range opts {
		opt(e)
	}

	if err := e.hooks.RunPreStart(ctx); err != nil {
		return nil, fmt.Errorf("pre-start hook: %w", err)
	}

	ensureSystemClock(m)

	seen := make(map[string]*broker.Broker) // configKey -> canonical broker
	for _, b := range m.Brokers {
		seen[b.ConfigKey()] = b
	}
	byConfigKey := make(map[string]transport.Transport, len(seen))
	for key, b := range seen {
		tr, err := buildTransport(ctx, b, log, e.retryCfg)
		if err != nil {
			return nil, fmt.Errorf("broker %q: %w", b.Name, err)
		}
		byConfigKey[key] = tr
	}
	for _, b := range m.Brokers {
		e.transports[b.Name] = byConfigKey[b.ConfigKey()]
	}

	e.store = store.New(m.Entities)

	entitiesByName := make(map[string]*entity.Entity, len(m.Entities))
	for _, ent := range m.Entities {
		entitiesByName[ent.Name] = ent
	}

	pub := &entityPublisher{entities: entitiesByName, transports: e.transports, metrics: e.metrics, gs: e.gs, log: log}

	for _, ent := range m.Entities {
		tr, ok := e.transports[ent.BrokerName]
		if !ok {
			return nil, fmt.Errorf("entity %q: no broker named %q", ent.Name, ent.BrokerName)
		}
		entityName := ent.Name
		handler := e.messageHandler(entityName)
		if err := tr.Subscribe(ctx, ent.Topic, handler); err != nil {
			return nil, fmt.Errorf("entity %q: subscribe: %w", entityName, err)
		}
	}

	compiler := condeval.NewCompiler(e.store)
	dispatcher := action.NewDispatcher(pub, log)
	reg := make(runner.Registry, len(m.Automations))
	for _, a := range m.Automations {
		reg[a.Name] = a
	}

	for _, a := range m.Automations {
		pred, rendered, err := compiler.Compile(a.Condition)
		if err != nil {
			return nil, fmt.Errorf("automation %q: compile condition: %w", a.Name, err)
		}
		log.WithField("automation", a.Name).WithField("condition", rendered).Debug("condition compiled")
		runnerOpts := []runner.Option{runner.WithTracer(e.tracer)}
		if e.metrics != nil {
			runnerOpts = append(runnerOpts, runner.WithMetrics(metrics.NewRunnerAdapter(e.metrics)))
		}
		e.runners = append(e.runners, runner.New(a, pred, rendered, dispatcher, reg, log, runnerOpts...))
	}

	return e, nil
}

// messageHandler returns the MessageHandler bound to entityName: apply the
// payload to the store and record entity_messages_total/buffer_size.
func (e *Engine) messageHandler(entityName string) transport.MessageHandler {
	return func(_ string, payload []byte) {
		if err := e.store.ApplyMessage(entityName, payload); err != nil {
			e.log.WithField("entity", entityName).WithField("error", err).Warn("inbound message rejected")
			return
		}
		if e.metrics == nil {
			return
		}
		e.metrics.EntityMessagesTotal.WithLabelValues(entityName).Inc()
		for attr, n := range e.store.BufferFillLevels(entityName) {
			e.metrics.BufferSize.WithLabelValues(entityName, attr).Set(float64(n))
		}
	}
}

// ensureSystemClock appends the built-in system_clock entity, bound to the
// model's first broker, when the model did not declare one explicitly. Per
// spec, the clock is published by an external producer at 1Hz; the engine
// only ever subscribes to it like any other entity.
func ensureSystemClock(m *model.Model) {
	if m.EntityByName(entity.SystemClockName) != nil {
		return
	}
	brokerName := ""
	if len(m.Brokers) > 0 {
		brokerName = m.Brokers[0].Name
	}
	m.Entities = append(m.Entities, entity.NewSystemClock(brokerName))
}

// Run starts every runner and blocks until ctx is canceled, then closes
// every transport. Runner panics are recovered and logged rather than
// taking down sibling runners.
func (e *Engine) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	for _, r := range e.runners {
		r := r
		wg.Add(1)
		utils.SafeGo(func() {
			defer wg.Done()
			_ = r.Run(ctx)
		}, func(err error) {
			e.log.WithField("automation", r.Name()).WithField("error", err).Error("runner panicked, recovered")
		})
	}

	if err := e.hooks.RunPostStart(ctx); err != nil {
		e.log.WithField("error", err).Warn("post-start hook failed")
	}

	<-ctx.Done()
	wg.Wait()

	if err := e.hooks.RunPreStop(context.Background()); err != nil {
		e.log.WithField("error", err).Warn("pre-stop hook failed")
	}

	e.gs.Shutdown()
	if err := e.gs.WaitWithTimeout(5 * time.Second); err != nil {
		e.log.WithField("error", err).Warn("in-flight action publishes did not drain before shutdown timeout")
	}

	var firstErr error
	for name, tr := range e.transports {
		if err := tr.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close broker %q: %w", name, err)
		}
	}

	if err := e.hooks.RunPostStop(context.Background()); err != nil {
		e.log.WithField("error", err).Warn("post-stop hook failed")
	}

	return firstErr
}
