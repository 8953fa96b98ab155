package transport

import (
	"context"
	"sync"
)

// Memory is an in-process Transport: publishes on a topic are delivered
// synchronously to every handler subscribed to that exact topic. Used by
// tests that need a broker double without a live daemon.
type Memory struct {
	mu       sync.RWMutex
	handlers map[string][]MessageHandler
	closed   bool
}

// NewMemory builds an empty in-process Transport.
func NewMemory() *Memory {
	return &Memory{handlers: make(map[string][]MessageHandler)}
}

func (m *Memory) Subscribe(_ context.Context, topic string, handler MessageHandler) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return errClosed
	}
	m.handlers[topic] = append(m.handlers[topic], handler)
	return nil
}

func (m *Memory) Publish(_ context.Context, topic string, payload []byte) error {
	m.mu.RLock()
	handlers := append([]MessageHandler(nil), m.handlers[topic]...)
	closed := m.closed
	m.mu.RUnlock()
	if closed {
		return errClosed
	}
	for _, h := range handlers {
		h(topic, payload)
	}
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
