// Package store implements the Entity State Store: the concurrency-safe
// plane of per-entity attribute maps and bounded history buffers that
// broker subscriptions write to and the condition evaluator reads from.
package store

import (
	"sync"

	"github.com/smauto-dev/engine/domain/entity"
	"github.com/smauto-dev/engine/infrastructure/errors"
)

// entityState is the mutable runtime state for one Entity: its current
// attribute values and any history buffers declared against it. A single
// RWMutex protects both maps so that a subscriber delivery (writer) and any
// number of concurrent condition evaluations (readers) never observe a torn
// update to one attribute.
type entityState struct {
	mu      sync.RWMutex
	def     *entity.Entity
	values  map[string]any
	buffers map[string]*ring
}

// Store holds one entityState per entity, keyed by entity name.
type Store struct {
	entities map[string]*entityState
}

// New builds a Store seeded with the given entities' declared (zero) values.
func New(entities []*entity.Entity) *Store {
	s := &Store{entities: make(map[string]*entityState, len(entities))}
	for _, e := range entities {
		es := &entityState{
			def:     e,
			values:  make(map[string]any, len(e.Attributes)),
			buffers: make(map[string]*ring),
		}
		for _, a := range e.Attributes {
			es.values[a.Name] = a.Value
		}
		s.entities[e.Name] = es
	}
	return s
}

func (s *Store) entity(name string) (*entityState, error) {
	es, ok := s.entities[name]
	if !ok {
		return nil, errors.UnknownEntity(name)
	}
	return es, nil
}

// DeclareBuffer ensures attrName on entityName has a history buffer of at
// least capacity, growing an existing smaller buffer if needed. Called by
// the condition compiler at compile time, before any evaluation runs.
func (s *Store) DeclareBuffer(entityName, attrName string, capacity int) error {
	es, err := s.entity(entityName)
	if err != nil {
		return err
	}
	es.mu.Lock()
	defer es.mu.Unlock()
	if b, ok := es.buffers[attrName]; ok {
		b.grow(capacity)
		return nil
	}
	es.buffers[attrName] = newRing(capacity)
	return nil
}

// Get returns the current value of entityName.attrName.
func (s *Store) Get(entityName, attrName string) (any, error) {
	es, err := s.entity(entityName)
	if err != nil {
		return nil, err
	}
	es.mu.RLock()
	defer es.mu.RUnlock()
	v, ok := es.values[attrName]
	if !ok {
		return nil, errors.UnknownAttribute(entityName, attrName)
	}
	return v, nil
}

// GetBuffer returns the zero-padded history buffer for entityName.attrName.
// The attribute must have had a buffer declared via DeclareBuffer.
func (s *Store) GetBuffer(entityName, attrName string) ([]float64, error) {
	es, err := s.entity(entityName)
	if err != nil {
		return nil, err
	}
	es.mu.RLock()
	defer es.mu.RUnlock()
	b, ok := es.buffers[attrName]
	if !ok {
		return nil, errors.EvaluationErrorf("no buffer declared for %s.%s", entityName, attrName)
	}
	return b.snapshot(), nil
}

// BufferFillLevels returns, for every buffer currently declared on
// entityName, the attribute name and its current sample count. Used by the
// engine to export the buffer_size gauge; returns nil for an entity with no
// declared buffers rather than an error, since most entities never back an
// aggregate operand.
func (s *Store) BufferFillLevels(entityName string) map[string]int {
	es, ok := s.entities[entityName]
	if !ok {
		return nil
	}
	es.mu.RLock()
	defer es.mu.RUnlock()
	if len(es.buffers) == 0 {
		return nil
	}
	out := make(map[string]int, len(es.buffers))
	for attr, b := range es.buffers {
		out[attr] = b.filled()
	}
	return out
}

// ApplyMessage updates entityName's attributes from an inbound JSON
// payload. Unknown keys are ignored; a Time attribute's nested
// {hour,minute,second} object replaces its three sub-fields; nested Dict
// attributes recurse into sub-fields; numeric attributes with a declared
// buffer have the new scalar appended.
func (s *Store) ApplyMessage(entityName string, payload []byte) error {
	es, err := s.entity(entityName)
	if err != nil {
		return err
	}

	fields, err := decodePayload(payload)
	if err != nil {
		return errors.TransportErrorf("decode payload for %s: %v", entityName, err)
	}

	attrDict := es.def.AttributesDict()

	es.mu.Lock()
	defer es.mu.Unlock()
	for name, raw := range fields {
		attr, known := attrDict[name]
		if !known {
			continue
		}
		applyAttributeValue(es.values, attr, raw)
		if f, ok := numericScalar(es.values[name]); ok {
			if b, hasBuf := es.buffers[name]; hasBuf {
				b.push(f)
			}
		}
	}
	return nil
}

// applyAttributeValue updates values[attr.Name] in place according to
// attr.Kind, honoring the Time and Dict nested-merge special cases.
func applyAttributeValue(values map[string]any, attr *entity.Attribute, raw any) {
	switch attr.Kind {
	case entity.KindTime:
		obj, ok := raw.(map[string]any)
		if !ok {
			return
		}
		cur, _ := values[attr.Name].(entity.Time)
		if h, ok := numericScalar(obj["hour"]); ok {
			cur.Hour = int(h)
		}
		if m, ok := numericScalar(obj["minute"]); ok {
			cur.Minute = int(m)
		}
		if sec, ok := numericScalar(obj["second"]); ok {
			cur.Second = int(sec)
		}
		values[attr.Name] = cur
	case entity.KindDict:
		obj, ok := raw.(map[string]any)
		if !ok {
			return
		}
		cur, _ := values[attr.Name].(map[string]any)
		if cur == nil {
			cur = make(map[string]any, len(obj))
		}
		for k, v := range obj {
			cur[k] = v
		}
		values[attr.Name] = cur
	default:
		values[attr.Name] = raw
	}
}

// numericScalar reports whether v is a JSON-decoded number and returns it
// as float64.
func numericScalar(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
