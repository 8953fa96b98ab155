package condeval

import (
	"reflect"
	"strings"

	"github.com/smauto-dev/engine/domain/condition"
	"github.com/smauto-dev/engine/domain/entity"
	"github.com/smauto-dev/engine/infrastructure/errors"
)

// eval evaluates node to a boolean, returning an error on any failure a
// caller might want to log before Compile's recover/swallow turns it into
// false.
func (c *Compiler) eval(node *condition.Node) (bool, error) {
	switch node.Kind {
	case condition.KindGroup:
		return c.evalGroup(node)
	case condition.KindInRange:
		return c.evalInRange(node)
	default:
		return c.evalPrimitive(node)
	}
}

func (c *Compiler) evalGroup(node *condition.Node) (bool, error) {
	left, err := c.eval(node.Left)
	if err != nil {
		return false, err
	}
	right, err := c.eval(node.Right)
	if err != nil {
		return false, err
	}
	switch node.GroupOp {
	case condition.OpAND:
		return left && right, nil
	case condition.OpOR:
		return left || right, nil
	case condition.OpNOT, condition.OpXOR:
		return left != right, nil
	case condition.OpNOR:
		return !(left || right), nil
	case condition.OpXNOR:
		return left == right, nil
	case condition.OpNAND:
		return !(left && right), nil
	default:
		return false, errors.EvaluationErrorf("unknown group operator %q", node.GroupOp)
	}
}

func (c *Compiler) evalInRange(node *condition.Node) (bool, error) {
	raw, err := c.resolveOperand(node.RangeAttr)
	if err != nil {
		return false, err
	}
	x, ok := toFloat(raw)
	if !ok {
		return false, errors.EvaluationErrorf("InRange operand is not numeric: %v", raw)
	}
	return x > node.Min && x < node.Max, nil
}

func (c *Compiler) evalPrimitive(node *condition.Node) (bool, error) {
	left, err := c.resolveOperand(node.Operand1)
	if err != nil {
		return false, err
	}
	right, err := c.resolveOperand(node.Operand2)
	if err != nil {
		return false, err
	}

	switch node.Compare {
	case condition.OpEq, condition.OpIs:
		return valuesEqual(left, right), nil
	case condition.OpNeq, condition.OpIsNot:
		return !valuesEqual(left, right), nil
	case condition.OpGT, condition.OpGTE, condition.OpLT, condition.OpLTE:
		return compareOrdered(node.Compare, left, right)
	case condition.OpContains:
		return contains(right, left), nil
	case condition.OpNContains:
		return !contains(right, left), nil
	case condition.OpHas:
		return contains(left, right), nil
	case condition.OpHasNot:
		return !contains(left, right), nil
	case condition.OpIn:
		return contains(right, left), nil
	case condition.OpNotIn:
		return !contains(right, left), nil
	default:
		return false, errors.EvaluationErrorf("unknown compare operator %q", node.Compare)
	}
}

// resolveOperand materializes an Operand's current value: a literal as-is, a
// direct attribute read via the store, or an aggregate computed over the
// attribute's declared buffer.
func (c *Compiler) resolveOperand(op condition.Operand) (any, error) {
	switch op.OpKind {
	case condition.OperandLiteral:
		return op.Literal, nil
	case condition.OperandAttr:
		return c.store.Get(op.Entity, op.Attribute)
	case condition.OperandAggregate:
		buf, err := c.store.GetBuffer(op.Entity, op.Attribute)
		if err != nil {
			return nil, err
		}
		return aggregate(op.Agg, buf)
	default:
		return nil, errors.EvaluationErrorf("unknown operand kind %v", op.OpKind)
	}
}

// compareOrdered dispatches >,>=,<,<= for numeric and Time operands, the
// latter via its canonical integer encoding.
func compareOrdered(op condition.CompareOp, left, right any) (bool, error) {
	l, lok := toFloat(left)
	r, rok := toFloat(right)
	if !lok || !rok {
		return false, errors.EvaluationErrorf("ordered comparison on non-numeric operands: %v %s %v", left, op, right)
	}
	switch op {
	case condition.OpGT:
		return l > r, nil
	case condition.OpGTE:
		return l >= r, nil
	case condition.OpLT:
		return l < r, nil
	case condition.OpLTE:
		return l <= r, nil
	default:
		return false, errors.EvaluationErrorf("not an ordered operator: %q", op)
	}
}

// toFloat coerces a resolved value to float64 for numeric/time comparisons.
// Time values use their canonical integer encoding.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case entity.Time:
		return float64(n.ToInt()), true
	default:
		return 0, false
	}
}

// valuesEqual implements deep equality across booleans/strings/lists/dicts,
// numeric cross-type equality (int vs float64, as JSON decode produces the
// latter), and Time equality via its integer encoding.
func valuesEqual(a, b any) bool {
	if at, ok := a.(entity.Time); ok {
		if bt, ok := b.(entity.Time); ok {
			return at.ToInt() == bt.ToInt()
		}
		if bf, ok := toFloat(b); ok {
			return float64(at.ToInt()) == bf
		}
		return false
	}
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			return af == bf
		}
	}
	return reflect.DeepEqual(a, b)
}

// contains implements ~ / has / in semantics: item found inside container,
// where container is a string (substring) or a list ([]any membership).
func contains(container, item any) bool {
	switch c := container.(type) {
	case string:
		s, ok := item.(string)
		if !ok {
			return false
		}
		return strings.Contains(c, s)
	case []any:
		for _, v := range c {
			if valuesEqual(v, item) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
