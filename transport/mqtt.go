package transport

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/smauto-dev/engine/domain/broker"
	"github.com/smauto-dev/engine/infrastructure/resilience"
	"github.com/smauto-dev/engine/pkg/logger"
)

// MQTT is a Transport backed by an eclipse/paho.mqtt.golang client.
type MQTT struct {
	client mqtt.Client
	log    *logger.Logger
}

// NewMQTT connects to cfg, retrying transient failures per retryCfg before
// surfacing a permanent transport error.
func NewMQTT(ctx context.Context, cfg *broker.Broker, log *logger.Logger, retryCfg resilience.RetryConfig) (*MQTT, error) {
	scheme := "tcp"
	if cfg.SSL {
		scheme = "ssl"
	}
	limiter := reconnectLimiter(2 * time.Second)
	opts := mqtt.NewClientOptions().
		AddBroker(fmt.Sprintf("%s://%s:%d", scheme, cfg.Host, cfg.Port)).
		SetClientID(fmt.Sprintf("smauto-%s", cfg.Name)).
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(2 * time.Second).
		SetConnectionLostHandler(func(_ mqtt.Client, err error) {
			if limiter.Allow() {
				log.WithField("broker", cfg.Name).WithField("error", err).Warn("mqtt connection lost, auto-reconnecting")
			}
		})
	if cfg.Auth.Username != "" {
		opts.SetUsername(cfg.Auth.Username)
		opts.SetPassword(cfg.Auth.Password)
	}

	client := mqtt.NewClient(opts)
	err := connectWithRetry(ctx, cfg.Name, retryCfg, func() error {
		token := client.Connect()
		token.Wait()
		return token.Error()
	})
	if err != nil {
		return nil, err
	}

	return &MQTT{client: client, log: log}, nil
}

func (m *MQTT) Subscribe(_ context.Context, topic string, handler MessageHandler) error {
	wire := toMQTTTopic(topic)
	token := m.client.Subscribe(wire, 1, func(_ mqtt.Client, msg mqtt.Message) {
		handler(fromMQTTTopic(msg.Topic()), msg.Payload())
	})
	token.Wait()
	return token.Error()
}

func (m *MQTT) Publish(_ context.Context, topic string, payload []byte) error {
	token := m.client.Publish(toMQTTTopic(topic), 1, false, payload)
	token.Wait()
	return token.Error()
}

func (m *MQTT) Close() error {
	m.client.Disconnect(250)
	return nil
}
