package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engerrors "github.com/smauto-dev/engine/infrastructure/errors"
	"github.com/smauto-dev/engine/domain/model"
)

const s1Doc = `
brokers:
  - name: home_mqtt
    kind: mqtt
    host: localhost
    port: 1883
entities:
  - name: motion_detector
    type: sensor
    broker: home_mqtt
    topic: bedroom.motion_detector
    attributes:
      - {name: detected, kind: bool}
      - {name: posX, kind: int}
      - {name: posY, kind: int}
  - name: bedroom_lamp
    type: actuator
    broker: home_mqtt
    topic: bedroom.lamp
    attributes:
      - {name: power, kind: bool}
automations:
  - name: bedroom_lamp_on
    freq: 1
    condition:
      kind: group
      op: AND
      left:
        kind: group
        op: AND
        left:
          kind: bool
          operand1: {kind: attr, entity: motion_detector, attribute: detected}
          compare: "=="
          operand2: {kind: literal, value: true}
        right:
          kind: numeric
          operand1: {kind: attr, entity: motion_detector, attribute: posX}
          compare: "=="
          operand2: {kind: literal, value: 5}
      right:
        kind: numeric
        operand1: {kind: attr, entity: motion_detector, attribute: posY}
        compare: "=="
        operand2: {kind: literal, value: 0}
    actions:
      - {entity: bedroom_lamp, attribute: power, value: true}
`

func TestParseS1Document(t *testing.T) {
	m, err := model.Parse([]byte(s1Doc))
	require.NoError(t, err)

	require.Len(t, m.Brokers, 1)
	require.Len(t, m.Entities, 2)
	require.Len(t, m.Automations, 1)

	a := m.AutomationByName("bedroom_lamp_on")
	require.NotNil(t, a)
	assert.Equal(t, 1.0, a.EffectiveFreqHz())
	require.Len(t, a.Actions, 1)
	assert.Equal(t, "bedroom_lamp", a.Actions[0].Entity)
}

func TestParseRejectsDuplicateEntityName(t *testing.T) {
	doc := `
entities:
  - {name: dup, type: sensor, topic: a}
  - {name: dup, type: sensor, topic: b}
`
	_, err := model.Parse([]byte(doc))
	require.Error(t, err)
	ee, ok := engerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, engerrors.CodeConfigDuplicateName, ee.Code)
}

func TestParseRejectsUnknownAfterReference(t *testing.T) {
	doc := `
automations:
  - name: a1
    after: ["ghost"]
`
	_, err := model.Parse([]byte(doc))
	require.Error(t, err)
	ee, ok := engerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, engerrors.CodeConfigUnknownRef, ee.Code)
}

func TestParseRejectsUnknownAttributeInAction(t *testing.T) {
	doc := `
entities:
  - {name: lamp, type: actuator, topic: a, attributes: [{name: power, kind: bool}]}
automations:
  - name: a1
    actions:
      - {entity: lamp, attribute: ghost_attr, value: true}
`
	_, err := model.Parse([]byte(doc))
	require.Error(t, err)
	ee, ok := engerrors.As(err)
	require.True(t, ok)
	assert.Equal(t, engerrors.CodeConfigUnknownRef, ee.Code)
}

func TestDefaultEntityFrequencyAppliedWhenOmitted(t *testing.T) {
	doc := `
entities:
  - {name: sensor1, type: sensor, topic: a}
`
	m, err := model.Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, 1.0, m.EntityByName("sensor1").Freq)
}
