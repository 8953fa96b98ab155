package lifecycle_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/smauto-dev/engine/runtime/lifecycle"
)

// TestOperationGuardTracksPublishInFlight grounds entityPublisher.Publish:
// every outbound message is wrapped in a guard so shutdown can drain it.
func TestOperationGuardTracksPublishInFlight(t *testing.T) {
	gs := lifecycle.NewGracefulShutdown()

	guard := lifecycle.NewOperationGuard(gs)
	assert.NotNil(t, guard)

	done := make(chan struct{})
	go func() {
		assert.NoError(t, gs.WaitWithTimeout(50*time.Millisecond))
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("wait returned before the in-flight publish closed its guard")
	case <-time.After(10 * time.Millisecond):
	}

	guard.Close()
	<-done
}

// TestOperationGuardRefusesNewWorkAfterShutdown grounds entityPublisher.Publish's
// shutdown error path: a publish started after Shutdown is rejected outright.
func TestOperationGuardRefusesNewWorkAfterShutdown(t *testing.T) {
	gs := lifecycle.NewGracefulShutdown()
	gs.Shutdown()

	guard := lifecycle.NewOperationGuard(gs)
	assert.Nil(t, guard)
}

func TestOperationGuardNilGracefulShutdownIsANoop(t *testing.T) {
	guard := lifecycle.NewOperationGuard(nil)
	assert.NotNil(t, guard)
	assert.NotPanics(t, guard.Close)
}

// TestWaitWithTimeoutReturnsErrorWhenWorkOutlivesTimeout grounds Engine.Run's
// shutdown path, which logs a warning rather than blocking forever when
// in-flight publishes do not drain before the timeout.
func TestWaitWithTimeoutReturnsErrorWhenWorkOutlivesTimeout(t *testing.T) {
	gs := lifecycle.NewGracefulShutdown()
	guard := lifecycle.NewOperationGuard(gs)
	assert.NotNil(t, guard)
	defer guard.Close()

	err := gs.WaitWithTimeout(10 * time.Millisecond)
	assert.Error(t, err)
}
