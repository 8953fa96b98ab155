package store

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// decodePayload parses a broker message's JSON object into a name->value
// map without a full encoding/json reflection pass for the common case of
// flat scalar attribute updates; gjson.Result.Value() materializes nested
// objects/arrays only for the keys actually present (Time, Dict, List
// attributes).
func decodePayload(payload []byte) (map[string]any, error) {
	if !gjson.ValidBytes(payload) {
		return nil, fmt.Errorf("invalid JSON payload")
	}
	result := gjson.ParseBytes(payload)
	if !result.IsObject() {
		return nil, fmt.Errorf("payload is not a JSON object")
	}
	fields := make(map[string]any)
	result.ForEach(func(key, value gjson.Result) bool {
		fields[key.String()] = value.Value()
		return true
	})
	return fields, nil
}
