package action_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smauto-dev/engine/action"
	"github.com/smauto-dev/engine/domain/automation"
	"github.com/smauto-dev/engine/pkg/logger"
)

type fakePublisher struct {
	mu       sync.Mutex
	messages map[string][]byte
	failFor  string
}

func (f *fakePublisher) Publish(_ context.Context, entityName string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if entityName == f.failFor {
		return errors.New("connection refused")
	}
	if f.messages == nil {
		f.messages = make(map[string][]byte)
	}
	f.messages[entityName] = payload
	return nil
}

func TestDispatchGroupsActionsByEntity(t *testing.T) {
	pub := &fakePublisher{}
	d := action.NewDispatcher(pub, logger.NewDefault("test"))

	err := d.Dispatch(context.Background(), []automation.Action{
		{Entity: "bedroom_lamp", Attribute: "power", Value: true},
		{Entity: "bedroom_lamp", Attribute: "brightness", Value: 80},
		{Entity: "hallway_lamp", Attribute: "power", Value: false},
	})
	require.NoError(t, err)

	var lamp map[string]any
	require.NoError(t, json.Unmarshal(pub.messages["bedroom_lamp"], &lamp))
	assert.Equal(t, true, lamp["power"])
	assert.Equal(t, float64(80), lamp["brightness"])

	var hallway map[string]any
	require.NoError(t, json.Unmarshal(pub.messages["hallway_lamp"], &hallway))
	assert.Equal(t, false, hallway["power"])
}

func TestDispatchPublishFailureIsReportedNotFatal(t *testing.T) {
	pub := &fakePublisher{failFor: "bedroom_lamp"}
	d := action.NewDispatcher(pub, logger.NewDefault("test"))

	err := d.Dispatch(context.Background(), []automation.Action{
		{Entity: "bedroom_lamp", Attribute: "power", Value: true},
		{Entity: "hallway_lamp", Attribute: "power", Value: true},
	})
	assert.Error(t, err, "a publish failure is reported to the caller")

	var hallway map[string]any
	require.NoError(t, json.Unmarshal(pub.messages["hallway_lamp"], &hallway))
	assert.Equal(t, true, hallway["power"], "other entities still get dispatched despite one failing")
}

func TestDispatchEmptyActionsNoop(t *testing.T) {
	pub := &fakePublisher{}
	d := action.NewDispatcher(pub, logger.NewDefault("test"))
	require.NoError(t, d.Dispatch(context.Background(), nil))
	assert.Empty(t, pub.messages)
}
