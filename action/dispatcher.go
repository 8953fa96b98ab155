// Package action implements the Action Dispatcher: it aggregates a
// triggered automation's per-attribute action list into one outbound JSON
// message per target entity and publishes each through that entity's
// broker.
package action

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/smauto-dev/engine/domain/automation"
	"github.com/smauto-dev/engine/infrastructure/errors"
	"github.com/smauto-dev/engine/pkg/logger"
)

// Publisher publishes a JSON payload to the topic associated with
// entityName. Implemented by the transport package per broker kind.
type Publisher interface {
	Publish(ctx context.Context, entityName string, payload []byte) error
}

// Dispatcher groups and publishes an automation's actions.
type Dispatcher struct {
	publisher Publisher
	log       *logger.Logger
}

// NewDispatcher builds a Dispatcher publishing through pub.
func NewDispatcher(pub Publisher, log *logger.Logger) *Dispatcher {
	return &Dispatcher{publisher: pub, log: log}
}

// Dispatch groups actions by target entity, marshals each group into a
// single JSON object, and publishes it. A publish failure is logged and
// wrapped as an ACTION_PUBLISH_FAILED error but does not stop dispatch of
// the remaining entities' messages: per the failure semantics, the
// automation still proceeds to EXITED_SUCCESS regardless of dispatch
// outcome, so the caller is expected to log this return value rather than
// treat it as a trigger failure.
func (d *Dispatcher) Dispatch(ctx context.Context, actions []automation.Action) error {
	if len(actions) == 0 {
		return nil
	}
	correlationID := uuid.NewString()

	grouped := make(map[string]map[string]any)
	var order []string
	for _, a := range actions {
		fields, ok := grouped[a.Entity]
		if !ok {
			fields = make(map[string]any)
			grouped[a.Entity] = fields
			order = append(order, a.Entity)
		}
		fields[a.Attribute] = a.Value
	}

	var firstErr error
	for _, entityName := range order {
		fields := grouped[entityName]
		payload, err := json.Marshal(fields)
		if err != nil {
			d.log.WithFields(map[string]any{
				"correlation_id": correlationID,
				"entity":         entityName,
				"error":          err,
			}).Error("marshal action payload failed")
			if firstErr == nil {
				firstErr = errors.ActionPublishFailed(entityName, err)
			}
			continue
		}
		if err := d.publisher.Publish(ctx, entityName, payload); err != nil {
			wrapped := errors.ActionPublishFailed(entityName, err)
			d.log.WithFields(map[string]any{
				"correlation_id": correlationID,
				"entity":         entityName,
				"error":          wrapped,
			}).Warn("action publish failed, trigger still considered attempted")
			if firstErr == nil {
				firstErr = wrapped
			}
			continue
		}
		d.log.WithFields(map[string]any{
			"correlation_id": correlationID,
			"entity":         entityName,
		}).Debug("action dispatched")
	}
	return firstErr
}
