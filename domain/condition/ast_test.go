package condition_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smauto-dev/engine/domain/condition"
)

func TestGroupBuildsTree(t *testing.T) {
	left := condition.Primitive(condition.KindBool,
		condition.Attr("motion_detector", "detected"), condition.OpEq, condition.Lit(true))
	right := condition.Primitive(condition.KindNumeric,
		condition.Attr("motion_detector", "posX"), condition.OpEq, condition.Lit(5))
	root := condition.Group(left, condition.OpAND, right)

	assert.Equal(t, condition.KindGroup, root.Kind)
	assert.Equal(t, condition.OpAND, root.GroupOp)
	assert.Same(t, left, root.Left)
	assert.Same(t, right, root.Right)
}

func TestInRangeBuilder(t *testing.T) {
	n := condition.InRange(condition.Attr("humidity", "level"), 50, 70)
	assert.Equal(t, condition.KindInRange, n.Kind)
	assert.Equal(t, 50.0, n.Min)
	assert.Equal(t, 70.0, n.Max)
}

func TestAggregateOperand(t *testing.T) {
	op := condition.Aggregate(condition.AggMean, "humidity", "level", 5)
	assert.Equal(t, condition.OperandAggregate, op.OpKind)
	assert.Equal(t, condition.AggMean, op.Agg)
	assert.Equal(t, 5, op.WindowSize)
}

func TestNodeStringRendersGroup(t *testing.T) {
	left := condition.Primitive(condition.KindBool,
		condition.Attr("motion_detector", "detected"), condition.OpEq, condition.Lit(true))
	right := condition.Primitive(condition.KindNumeric,
		condition.Attr("motion_detector", "posX"), condition.OpEq, condition.Lit(5))
	root := condition.Group(left, condition.OpAND, right)

	assert.Equal(t, "(motion_detector.detected == true AND motion_detector.posX == 5)", root.String())
}

func TestNodeStringRendersInRange(t *testing.T) {
	n := condition.InRange(condition.Attr("humidity", "level"), 50, 70)
	assert.Equal(t, "humidity.level in [50, 70]", n.String())
}

func TestOperandStringRendersAggregate(t *testing.T) {
	op := condition.Aggregate(condition.AggMean, "humidity", "level", 5)
	assert.Equal(t, "mean(humidity.level, 5)", op.String())
}
