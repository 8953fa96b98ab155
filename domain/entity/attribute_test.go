package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smauto-dev/engine/domain/entity"
)

func TestTimeToIntOrdering(t *testing.T) {
	earlier := entity.Time{Hour: 9, Minute: 30, Second: 0}
	later := entity.Time{Hour: 9, Minute: 30, Second: 1}
	assert.Less(t, earlier.ToInt(), later.ToInt())

	hourBoundary := entity.Time{Hour: 10, Minute: 0, Second: 0}
	assert.Less(t, later.ToInt(), hourBoundary.ToInt())
}

func TestTimeValidate(t *testing.T) {
	assert.NoError(t, entity.Time{Hour: 24, Minute: 0, Second: 0}.Validate())
	assert.Error(t, entity.Time{Hour: 25, Minute: 0, Second: 0}.Validate())
	assert.Error(t, entity.Time{Hour: 10, Minute: 60, Second: 0}.Validate())
	assert.Error(t, entity.Time{Hour: 10, Minute: 0, Second: 60}.Validate())
}

func TestNewAttributeDefaults(t *testing.T) {
	assert.Equal(t, 0, entity.NewAttribute("n", entity.KindInt, nil).Value)
	assert.Equal(t, 0.0, entity.NewAttribute("n", entity.KindFloat, nil).Value)
	assert.Equal(t, "", entity.NewAttribute("n", entity.KindString, nil).Value)
	assert.Equal(t, false, entity.NewAttribute("n", entity.KindBool, nil).Value)
	assert.Equal(t, entity.Time{}, entity.NewAttribute("n", entity.KindTime, nil).Value)
}

func TestEntityAttributesDict(t *testing.T) {
	e := &entity.Entity{
		Name: "bedroom_lamp",
		Attributes: []*entity.Attribute{
			entity.NewAttribute("power", entity.KindBool, nil),
		},
	}
	dict := e.AttributesDict()
	assert.Contains(t, dict, "power")
	assert.Equal(t, false, dict["power"].Value)
}

func TestNewSystemClock(t *testing.T) {
	clock := entity.NewSystemClock("home_mqtt")
	assert.Equal(t, entity.SystemClockName, clock.Name)
	assert.Equal(t, entity.SystemClockTopic, clock.Topic)
	assert.Len(t, clock.Attributes, 1)
	assert.Equal(t, "time", clock.Attributes[0].Name)
}
