package engine

import (
	"context"
	"fmt"

	"github.com/smauto-dev/engine/domain/broker"
	"github.com/smauto-dev/engine/infrastructure/resilience"
	"github.com/smauto-dev/engine/pkg/logger"
	"github.com/smauto-dev/engine/transport"
)

// buildTransport dials cfg's kind with retryCfg bounding connection
// attempts, returning a permanent *errors.EngineError (via the transport
// package's connectWithRetry) if the connection cannot be established
// within that budget.
func buildTransport(ctx context.Context, cfg *broker.Broker, log *logger.Logger, retryCfg resilience.RetryConfig) (transport.Transport, error) {
	var (
		tr  transport.Transport
		err error
	)
	switch cfg.Kind {
	case broker.KindMQTT:
		tr, err = transport.NewMQTT(ctx, cfg, log, retryCfg)
	case broker.KindAMQP:
		tr, err = transport.NewAMQP(ctx, cfg, log, retryCfg)
	case broker.KindRedis:
		tr, err = transport.NewRedis(ctx, cfg, log, retryCfg)
	default:
		return nil, fmt.Errorf("broker %q: unsupported kind %q", cfg.Name, cfg.Kind)
	}
	if err != nil {
		return nil, err
	}
	return transport.WithCircuitBreaker(tr), nil
}
