package engine

import (
	"context"
	"time"

	"github.com/smauto-dev/engine/domain/entity"
	"github.com/smauto-dev/engine/infrastructure/errors"
	"github.com/smauto-dev/engine/pkg/logger"
	"github.com/smauto-dev/engine/pkg/metrics"
	"github.com/smauto-dev/engine/runtime/lifecycle"
	"github.com/smauto-dev/engine/transport"
)

// entityPublisher implements action.Publisher by resolving an entity name to
// its topic and broker transport. It is the one place broker_publish_total
// and broker_publish_duration_seconds are recorded, since every outbound
// action message passes through it. Every publish is wrapped in an
// OperationGuard so Engine.Run can drain in-flight publishes before closing
// transports on shutdown.
type entityPublisher struct {
	entities   map[string]*entity.Entity
	transports map[string]transport.Transport // keyed by broker name
	metrics    *metrics.Metrics
	gs         *lifecycle.GracefulShutdown
	log        *logger.Logger
}

func (p *entityPublisher) Publish(ctx context.Context, entityName string, payload []byte) error {
	guard := lifecycle.NewOperationGuard(p.gs)
	if guard == nil {
		return errors.ActionPublishFailed(entityName, errors.ConfigErrorf("engine is shutting down"))
	}
	defer guard.Close()

	e, ok := p.entities[entityName]
	if !ok {
		return errors.UnknownEntity(entityName)
	}
	tr, ok := p.transports[e.BrokerName]
	if !ok {
		return errors.ActionPublishFailed(entityName, errors.ConfigErrorf("entity %q has no transport bound", entityName))
	}

	start := time.Now()
	err := tr.Publish(ctx, e.Topic, payload)
	if p.metrics != nil {
		result := "ok"
		if err != nil {
			result = "error"
		}
		p.metrics.BrokerPublishTotal.WithLabelValues(e.BrokerName, result).Inc()
		p.metrics.BrokerPublishSeconds.WithLabelValues(e.BrokerName).Observe(time.Since(start).Seconds())
	}
	return err
}
