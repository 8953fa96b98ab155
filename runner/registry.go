package runner

import "github.com/smauto-dev/engine/domain/automation"

// Registry resolves automation names to their runtime Automation, letting a
// runner inspect peers named in after/starts/stops without the Automation
// model itself needing back-pointers (see SPEC_FULL.md's cyclic-reference
// design note).
type Registry map[string]*automation.Automation

// BarrierClear reports whether none of names is currently RUNNING.
func (r Registry) BarrierClear(names []string) bool {
	for _, name := range names {
		if peer, ok := r[name]; ok && peer.State() == automation.StateRunning {
			return false
		}
	}
	return true
}

// Enable enables every automation in names, ignoring unknown names.
func (r Registry) Enable(names []string) {
	for _, name := range names {
		if peer, ok := r[name]; ok {
			peer.Enable()
		}
	}
}

// Disable disables every automation in names, ignoring unknown names.
func (r Registry) Disable(names []string) {
	for _, name := range names {
		if peer, ok := r[name]; ok {
			peer.Disable()
		}
	}
}
