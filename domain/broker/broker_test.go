package broker_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smauto-dev/engine/domain/broker"
)

func TestNormalizeDefaultsPort(t *testing.T) {
	b := &broker.Broker{Name: "home", Kind: broker.KindMQTT}
	require.NoError(t, b.Normalize())
	assert.Equal(t, 1883, b.Port)
}

func TestNormalizeAMQPExchangeDefaults(t *testing.T) {
	b := &broker.Broker{Name: "amqp1", Kind: broker.KindAMQP}
	require.NoError(t, b.Normalize())
	assert.Equal(t, "amq.topic", b.TopicExchange)
	assert.Equal(t, "DEFAULT", b.RPCExchange)
	assert.Equal(t, 5672, b.Port)
}

func TestNormalizeUnknownKind(t *testing.T) {
	b := &broker.Broker{Name: "bad", Kind: "carrier-pigeon"}
	assert.Error(t, b.Normalize())
}

func TestConfigKeyDedup(t *testing.T) {
	a := &broker.Broker{Kind: broker.KindMQTT, Host: "localhost", Port: 1883}
	b := &broker.Broker{Kind: broker.KindMQTT, Host: "localhost", Port: 1883}
	c := &broker.Broker{Kind: broker.KindMQTT, Host: "otherhost", Port: 1883}
	assert.Equal(t, a.ConfigKey(), b.ConfigKey())
	assert.NotEqual(t, a.ConfigKey(), c.ConfigKey())
}
