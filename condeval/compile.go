// Package condeval compiles a parsed condition.Node into a pure predicate
// closure over a live store.Store, per the no-host-eval design: operators
// are dispatched by operand kind instead of serializing nodes to source text
// and invoking a sandboxed interpreter.
package condeval

import (
	"github.com/smauto-dev/engine/domain/condition"
	"github.com/smauto-dev/engine/store"
)

// Predicate is a compiled condition ready to evaluate on demand. It never
// panics and never returns an error: any internal failure resolves to false
// for that tick, per the evaluation-safety invariant.
type Predicate func() bool

// Compiler turns condition ASTs into Predicates against one Store.
type Compiler struct {
	store *store.Store
}

// NewCompiler builds a Compiler reading from s.
func NewCompiler(s *store.Store) *Compiler {
	return &Compiler{store: s}
}

// Compile performs a post-order pass over node: first declaring every
// aggregate operand's required buffer capacity against the store (so no
// buffer is ever read before it exists), then returning a closure that
// re-evaluates the tree on every call, alongside a human-readable rendering
// of the expression for trigger logs and trace attributes.
func (c *Compiler) Compile(node *condition.Node) (Predicate, string, error) {
	if node == nil {
		return func() bool { return false }, "<nil>", nil
	}
	if err := c.declareBuffers(node); err != nil {
		return nil, "", err
	}
	rendered := node.String()
	return func() (result bool) {
		defer func() {
			if recover() != nil {
				result = false
			}
		}()
		ok, err := c.eval(node)
		if err != nil {
			return false
		}
		return ok
	}, rendered, nil
}

// declareBuffers walks node, ensuring every aggregate operand's windowed
// attribute has a buffer of at least its requested capacity. Called once at
// compile time, before Predicate is ever invoked.
func (c *Compiler) declareBuffers(node *condition.Node) error {
	if node == nil {
		return nil
	}
	switch node.Kind {
	case condition.KindGroup:
		if err := c.declareBuffers(node.Left); err != nil {
			return err
		}
		return c.declareBuffers(node.Right)
	case condition.KindInRange:
		return c.declareOperand(node.RangeAttr)
	default:
		if err := c.declareOperand(node.Operand1); err != nil {
			return err
		}
		return c.declareOperand(node.Operand2)
	}
}

func (c *Compiler) declareOperand(op condition.Operand) error {
	if op.OpKind != condition.OperandAggregate {
		return nil
	}
	return c.store.DeclareBuffer(op.Entity, op.Attribute, op.WindowSize)
}
