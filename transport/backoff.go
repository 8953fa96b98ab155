package transport

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/smauto-dev/engine/infrastructure/errors"
	"github.com/smauto-dev/engine/infrastructure/resilience"
)

// connectWithRetry runs connect with the given bounded exponential backoff,
// wrapping an exhausted final failure as a permanent transport error naming
// broker. Transient errors are retried internally, never propagated to the
// engine, but a broker that never comes up must still abort startup rather
// than retry forever: cfg is the caller's configured retry budget.
func connectWithRetry(ctx context.Context, broker string, cfg resilience.RetryConfig, connect func() error) error {
	err := resilience.Retry(ctx, cfg, connect)
	if err != nil {
		return errors.TransportPermanent(broker, err)
	}
	return nil
}

// reconnectLimiter throttles how often a long-lived client's connection-lost
// events are logged, so a flapping broker does not flood the log. The MQTT
// transport uses one in its connection-lost handler; the reconnect attempts
// themselves are paced by the client's own retry interval, not by this
// limiter.
func reconnectLimiter(perInterval time.Duration) *rate.Limiter {
	return rate.NewLimiter(rate.Every(perInterval), 1)
}
