package transport

import (
	"context"

	"github.com/smauto-dev/engine/infrastructure/resilience"
)

// breakered wraps a Transport so that a broker stuck failing every publish
// (connection flapping, broker outage) fails fast instead of blocking every
// automation's action dispatch behind a slow timeout.
type breakered struct {
	Transport
	breaker *resilience.CircuitBreaker
}

// WithCircuitBreaker wraps t's Publish calls with a circuit breaker using
// resilience's defaults, opening after repeated publish failures.
func WithCircuitBreaker(t Transport) Transport {
	return &breakered{Transport: t, breaker: resilience.New(resilience.DefaultConfig())}
}

func (b *breakered) Publish(ctx context.Context, topic string, payload []byte) error {
	return b.breaker.Execute(ctx, func() error {
		return b.Transport.Publish(ctx, topic, payload)
	})
}
