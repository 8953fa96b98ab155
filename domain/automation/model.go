// Package automation holds the parsed description of an Automation and its
// Actions. The runner package (see /runner) owns the concurrent state
// machine that executes an Automation at runtime; this package is the
// static model plus the atomic enabled/state flags the runner flips.
package automation

import (
	"sync/atomic"

	"github.com/smauto-dev/engine/domain/condition"
)

// State is the runtime state of an Automation's control loop.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateExitedSuccess
	StateExitedFailure
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateRunning:
		return "RUNNING"
	case StateExitedSuccess:
		return "EXITED_SUCCESS"
	case StateExitedFailure:
		return "EXITED_FAILURE"
	default:
		return "UNKNOWN"
	}
}

// Action is a single (entity, attribute, value) tuple published as part of
// an automation's trigger. Value's concrete Go type matches the target
// attribute's declared Kind ([]any for List, map[string]any for Dict).
type Action struct {
	Entity    string
	Attribute string
	Value     any
}

// Automation is the parsed, static description of one automation. Name is
// unique model-wide. Condition is the parsed condition AST; package condeval
// compiles it into the predicate the runner evaluates.
type Automation struct {
	Name      string
	Condition *condition.Node
	Actions   []Action

	// FreqHz is the pacing frequency in Hz; defaults to 1 when the model
	// leaves it unset or zero.
	FreqHz float64

	// Continuous: when false, a successful trigger disables the
	// automation (it must be externally re-enabled).
	Continuous bool

	// CheckOnce: when true, a successful trigger disables the automation
	// after running exactly once; see runner for the exact ordering with
	// Continuous.
	CheckOnce bool

	// After lists automation names this automation must wait behind: it
	// may not leave IDLE while any of them is RUNNING.
	After []string

	// Starts/Stops list automation names to enable/disable respectively
	// upon a successful trigger.
	Starts []string
	Stops  []string

	// enabled and state are runtime-only, flipped by the runner and read
	// by peer runners implementing the after-barrier and starts/stops
	// effects; both must be safe for concurrent access across runners.
	enabled atomic.Bool
	state   atomic.Int32
}

// NewAutomation builds an Automation with spec defaults applied
// (freq defaults to 1Hz, enabled defaults to true, continuous defaults to
// true, checkOnce defaults to false).
func NewAutomation(name string, cond *condition.Node, actions []Action) *Automation {
	a := &Automation{
		Name:       name,
		Condition:  cond,
		Actions:    actions,
		FreqHz:     1,
		Continuous: true,
	}
	a.enabled.Store(true)
	a.state.Store(int32(StateIdle))
	return a
}

// EffectiveFreqHz returns FreqHz, substituting the 1Hz default when unset.
func (a *Automation) EffectiveFreqHz() float64 {
	if a.FreqHz <= 0 {
		return 1
	}
	return a.FreqHz
}

// Enabled reports whether the automation is currently enabled.
func (a *Automation) Enabled() bool { return a.enabled.Load() }

// Enable flips the automation to enabled, idempotently.
func (a *Automation) Enable() { a.enabled.Store(true) }

// Disable flips the automation to disabled, idempotently.
func (a *Automation) Disable() { a.enabled.Store(false) }

// State returns the automation's current runtime state.
func (a *Automation) State() State { return State(a.state.Load()) }

// SetState atomically sets the automation's runtime state.
func (a *Automation) SetState(s State) { a.state.Store(int32(s)) }

// CompareAndSwapState atomically transitions state if it currently equals
// expected, returning whether the swap happened.
func (a *Automation) CompareAndSwapState(expected, next State) bool {
	return a.state.CompareAndSwap(int32(expected), int32(next))
}
