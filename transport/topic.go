package transport

import "strings"

// toMQTTTopic translates the engine's canonical dot-separated topic into
// MQTT's native "/" hierarchy; AMQP routing keys and Redis channel names
// both accept dots natively and need no translation.
func toMQTTTopic(canonical string) string {
	return strings.ReplaceAll(canonical, ".", "/")
}

// fromMQTTTopic reverses toMQTTTopic for inbound message delivery, so
// handlers always see the canonical dot-separated form regardless of
// transport.
func fromMQTTTopic(wire string) string {
	return strings.ReplaceAll(wire, "/", ".")
}
