package runner_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smauto-dev/engine/action"
	"github.com/smauto-dev/engine/domain/automation"
	"github.com/smauto-dev/engine/pkg/logger"
	"github.com/smauto-dev/engine/runner"
)

type countingPublisher struct {
	count atomic.Int32
}

func (p *countingPublisher) Publish(context.Context, string, []byte) error {
	p.count.Add(1)
	return nil
}

func alwaysTrue() bool  { return true }
func alwaysFalse() bool { return false }

func runFor(t *testing.T, r *runner.Runner, d time.Duration) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	require.NoError(t, r.Run(ctx))
}

// TestCheckOnceLatch grounds invariant 7/8: a checkOnce automation triggers
// once, then disables itself and does not trigger again.
func TestCheckOnceLatch(t *testing.T) {
	pub := &countingPublisher{}
	disp := action.NewDispatcher(pub, logger.NewDefault("test"))

	a := automation.NewAutomation("check_once_test", nil, []automation.Action{
		{Entity: "lamp", Attribute: "power", Value: true},
	})
	a.FreqHz = 50
	a.CheckOnce = true

	reg := runner.Registry{a.Name: a}
	r := runner.New(a, alwaysTrue, "true", disp, reg, logger.NewDefault("test"))

	runFor(t, r, 150*time.Millisecond)

	assert.False(t, a.Enabled(), "checkOnce automation disables itself after triggering")
	assert.LessOrEqual(t, pub.count.Load(), int32(2), "must not keep re-triggering after the latch")
	assert.GreaterOrEqual(t, pub.count.Load(), int32(1), "must have triggered at least once")
}

// TestContinuousKeepsRetriggering grounds invariant for continuous
// automations: as long as the condition stays true, each re-arm triggers
// again.
func TestContinuousKeepsRetriggering(t *testing.T) {
	pub := &countingPublisher{}
	disp := action.NewDispatcher(pub, logger.NewDefault("test"))

	a := automation.NewAutomation("continuous_test", nil, []automation.Action{
		{Entity: "lamp", Attribute: "power", Value: true},
	})
	a.FreqHz = 100

	reg := runner.Registry{a.Name: a}
	r := runner.New(a, alwaysTrue, "true", disp, reg, logger.NewDefault("test"))

	runFor(t, r, 200*time.Millisecond)

	assert.True(t, a.Enabled())
	assert.Greater(t, pub.count.Load(), int32(1), "continuous automation should retrigger multiple times")
}

// TestFalseConditionNeverTriggers ensures a runner that never observes a
// true condition never dispatches.
func TestFalseConditionNeverTriggers(t *testing.T) {
	pub := &countingPublisher{}
	disp := action.NewDispatcher(pub, logger.NewDefault("test"))

	a := automation.NewAutomation("never_trigger", nil, []automation.Action{
		{Entity: "lamp", Attribute: "power", Value: true},
	})
	a.FreqHz = 50

	reg := runner.Registry{a.Name: a}
	r := runner.New(a, alwaysFalse, "false", disp, reg, logger.NewDefault("test"))

	runFor(t, r, 100*time.Millisecond)

	assert.Equal(t, int32(0), pub.count.Load())
}

// TestAfterBarrierBlocksUntilDependencyLeavesRunning grounds scenario S3:
// B must remain IDLE while A is RUNNING.
func TestAfterBarrierBlocksUntilDependencyLeavesRunning(t *testing.T) {
	pub := &countingPublisher{}
	disp := action.NewDispatcher(pub, logger.NewDefault("test"))
	log := logger.NewDefault("test")

	depA := automation.NewAutomation("dep_a", nil, nil)
	depA.SetState(automation.StateRunning)

	b := automation.NewAutomation("dep_b", nil, []automation.Action{
		{Entity: "lamp", Attribute: "power", Value: true},
	})
	b.FreqHz = 50
	b.After = []string{"dep_a"}

	reg := runner.Registry{depA.Name: depA, b.Name: b}
	rb := runner.New(b, alwaysTrue, "true", disp, reg, log)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = rb.Run(ctx)
		close(done)
	}()

	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, automation.StateIdle, b.State(), "B must stay IDLE while A is RUNNING")
	assert.Equal(t, int32(0), pub.count.Load())

	// B is asleep in its 1s barrier poll; wait past the next poll.
	depA.SetState(automation.StateExitedSuccess)
	time.Sleep(1100 * time.Millisecond)
	assert.Greater(t, pub.count.Load(), int32(0), "B should run once A clears the barrier")

	cancel()
	<-done
}

// TestStartsAndStopsEffects grounds the starts[]/stops[] cross-automation
// enable/disable semantics.
func TestStartsAndStopsEffects(t *testing.T) {
	pub := &countingPublisher{}
	disp := action.NewDispatcher(pub, logger.NewDefault("test"))

	trigger := automation.NewAutomation("trigger_automation", nil, nil)
	trigger.FreqHz = 100
	trigger.CheckOnce = true
	trigger.Starts = []string{"peer_to_enable"}
	trigger.Stops = []string{"peer_to_disable"}

	peerEnable := automation.NewAutomation("peer_to_enable", nil, nil)
	peerEnable.Disable()

	peerDisable := automation.NewAutomation("peer_to_disable", nil, nil)

	reg := runner.Registry{
		trigger.Name:     trigger,
		peerEnable.Name:  peerEnable,
		peerDisable.Name: peerDisable,
	}
	r := runner.New(trigger, alwaysTrue, "true", disp, reg, logger.NewDefault("test"))

	runFor(t, r, 100*time.Millisecond)

	assert.True(t, peerEnable.Enabled(), "starts[] must enable its targets")
	assert.False(t, peerDisable.Enabled(), "stops[] must disable its targets")
}
