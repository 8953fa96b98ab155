// Package transport implements the Broker Transport layer: one connection
// per distinct broker configuration, translating the engine's canonical
// dot-separated topic namespace to each protocol's native separator and
// retrying transient connection failures with bounded backoff.
package transport

import "context"

// MessageHandler receives a decoded inbound message on topic.
type MessageHandler func(topic string, payload []byte)

// Transport is the engine's view of one broker connection: subscribe to a
// topic with a callback, or publish a payload to a topic. Permanent
// connection failures surface at construction time (aborting engine start);
// once connected, a mid-run publish failure is returned to the caller to
// log and drop, never retried indefinitely.
type Transport interface {
	Subscribe(ctx context.Context, topic string, handler MessageHandler) error
	Publish(ctx context.Context, topic string, payload []byte) error
	Close() error
}
