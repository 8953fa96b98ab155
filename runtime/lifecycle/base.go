package lifecycle

import (
	"sync"
	"sync/atomic"
)

// ServiceState represents the current state of a service.
type ServiceState int32

const (
	StateUninitialized ServiceState = iota
	StateInitializing
	StateReady
	StateNotReady
	StateStopping
	StateStopped
	StateFailed
)

// String returns a human-readable state name.
func (s ServiceState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateNotReady:
		return "not-ready"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ServiceBase tracks a service's name and lifecycle state with atomic
// read/write access, so the automation Runner can embed it instead of
// hand-rolling its own start/stop/fail bookkeeping.
type ServiceBase struct {
	state atomic.Int32
	name  atomic.Value // string

	mu        sync.RWMutex
	lastError error
}

// NewServiceBase creates a new ServiceBase with the given name.
func NewServiceBase(name string) *ServiceBase {
	b := &ServiceBase{}
	b.name.Store(name)
	return b
}

// Name returns the service name.
func (b *ServiceBase) Name() string {
	if v := b.name.Load(); v != nil {
		return v.(string)
	}
	return ""
}

// State returns the current service state.
func (b *ServiceBase) State() ServiceState {
	return ServiceState(b.state.Load())
}

// MarkStarted records that the service has started.
func (b *ServiceBase) MarkStarted() {
	b.state.Store(int32(StateReady))
}

// MarkStopped records that the service has stopped.
func (b *ServiceBase) MarkStopped() {
	b.state.Store(int32(StateStopped))
}

// MarkFailed records that the service has failed with an error.
func (b *ServiceBase) MarkFailed(err error) {
	b.mu.Lock()
	b.lastError = err
	b.mu.Unlock()
	b.state.Store(int32(StateFailed))
}

// LastError returns the error recorded by the most recent MarkFailed call.
func (b *ServiceBase) LastError() error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastError
}
