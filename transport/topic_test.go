package transport

import "testing"

func TestMQTTTopicTranslationRoundTrips(t *testing.T) {
	cases := []string{"bedroom.motion_detector", "system_clock", "a.b.c"}
	for _, c := range cases {
		wire := toMQTTTopic(c)
		if got := fromMQTTTopic(wire); got != c {
			t.Errorf("round-trip mismatch: %q -> %q -> %q", c, wire, got)
		}
	}
}

func TestToMQTTTopicReplacesDotsWithSlashes(t *testing.T) {
	if got := toMQTTTopic("bedroom.motion_detector"); got != "bedroom/motion_detector" {
		t.Errorf("got %q", got)
	}
}
