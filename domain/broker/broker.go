// Package broker holds parsed broker configuration — one Broker value per
// distinct connection the model declares, deduplicated by the engine before
// transports are constructed.
package broker

import "fmt"

// Kind identifies which wire protocol a Broker speaks.
type Kind string

const (
	KindMQTT  Kind = "mqtt"
	KindAMQP  Kind = "amqp"
	KindRedis Kind = "redis"
)

// Auth holds optional broker credentials. Empty Username/Password is
// permitted for MQTT and wherever the broker allows anonymous access.
type Auth struct {
	Username string
	Password string
}

// Broker is the parsed configuration for one broker connection. Name is
// unique model-wide; two brokers that declare identical connection
// parameters under different names share one transport (the engine dedups
// by config, not by name).
type Broker struct {
	Name string
	Kind Kind
	Host string
	Port int
	Auth Auth
	SSL  bool

	// AMQP-specific.
	VHost         string
	TopicExchange string // default "amq.topic"
	RPCExchange   string // default "DEFAULT"

	// Redis-specific.
	DB int
}

// DefaultPort returns the conventional port for Kind when the model leaves
// Port unset or zero.
func (k Kind) DefaultPort() int {
	switch k {
	case KindMQTT:
		return 1883
	case KindAMQP:
		return 5672
	case KindRedis:
		return 6379
	default:
		return 0
	}
}

// Normalize fills in kind-specific defaults (port, AMQP exchange names) and
// validates Kind is one of the supported transports.
func (b *Broker) Normalize() error {
	switch b.Kind {
	case KindMQTT:
	case KindAMQP:
		if b.TopicExchange == "" {
			b.TopicExchange = "amq.topic"
		}
		if b.RPCExchange == "" {
			b.RPCExchange = "DEFAULT"
		}
	case KindRedis:
	default:
		return fmt.Errorf("broker %q: unknown kind %q", b.Name, b.Kind)
	}
	if b.Port == 0 {
		b.Port = b.Kind.DefaultPort()
	}
	return nil
}

// ConfigKey returns a value equal for two Broker configs that should share
// one transport, used by the engine to deduplicate connections.
func (b *Broker) ConfigKey() string {
	return fmt.Sprintf("%s|%s|%d|%s|%v|%s|%d",
		b.Kind, b.Host, b.Port, b.Auth.Username, b.SSL, b.VHost, b.DB)
}
