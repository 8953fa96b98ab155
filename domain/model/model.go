// Package model holds the fully-resolved static description of a SmAuto
// system: its brokers, entities, and automations, as handed to the engine.
// Load parses this from a YAML document (the on-disk stand-in for the
// out-of-scope external grammar/parser's AST); Validate runs the in-scope
// structural checks spec.md requires before the engine is allowed to start.
package model

import (
	"github.com/smauto-dev/engine/domain/automation"
	"github.com/smauto-dev/engine/domain/broker"
	"github.com/smauto-dev/engine/domain/entity"
)

// Model is the parsed, validated description of one SmAuto system.
type Model struct {
	Brokers     []*broker.Broker
	Entities    []*entity.Entity
	Automations []*automation.Automation
}

// BrokersByKey returns Brokers deduplicated by ConfigKey, the grouping the
// engine uses to decide how many transports to actually open.
func (m *Model) BrokersByKey() map[string]*broker.Broker {
	out := make(map[string]*broker.Broker, len(m.Brokers))
	for _, b := range m.Brokers {
		out[b.ConfigKey()] = b
	}
	return out
}

// EntityByName returns the Entity named name, or nil.
func (m *Model) EntityByName(name string) *entity.Entity {
	for _, e := range m.Entities {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// AutomationByName returns the Automation named name, or nil.
func (m *Model) AutomationByName(name string) *automation.Automation {
	for _, a := range m.Automations {
		if a.Name == name {
			return a
		}
	}
	return nil
}
