package entity

// Type classifies an Entity's role. It is informational only — all entities
// may both publish and subscribe regardless of Type.
type Type string

const (
	TypeSensor   Type = "sensor"
	TypeActuator Type = "actuator"
	TypeHybrid   Type = "hybrid"
)

// SystemClockName is the reserved name of the built-in system clock entity.
const SystemClockName = "system_clock"

// SystemClockTopic is the topic the built-in clock producer publishes on.
const SystemClockTopic = "system.clock"

// DefaultFreqHz is applied whenever a model leaves an entity's freq unset
// or zero.
const DefaultFreqHz = 1.0

// Entity is the static, parsed description of a named object bound to one
// broker topic with an ordered list of attributes. Entity itself carries no
// mutable runtime state — attribute values and history buffers live in the
// concurrency-safe store (see package store) so that a single Entity value
// can be read by many runners while the subscriber path writes to it.
type Entity struct {
	Name       string
	Type       Type
	Freq       float64
	Topic      string
	BrokerName string
	Attributes []*Attribute
}

// AttributesDict returns a name-keyed view of Attributes. Names are unique
// within a single Entity.
func (e *Entity) AttributesDict() map[string]*Attribute {
	m := make(map[string]*Attribute, len(e.Attributes))
	for _, a := range e.Attributes {
		m[a.Name] = a
	}
	return m
}

// NewSystemClock builds the built-in system_clock entity bound to the given
// broker, used when a model does not declare it explicitly.
func NewSystemClock(brokerName string) *Entity {
	return &Entity{
		Name:       SystemClockName,
		Type:       TypeSensor,
		Freq:       1,
		Topic:      SystemClockTopic,
		BrokerName: brokerName,
		Attributes: []*Attribute{
			NewAttribute("time", KindTime, nil),
		},
	}
}
