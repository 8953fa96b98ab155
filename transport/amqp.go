package transport

import (
	"context"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/smauto-dev/engine/domain/broker"
	"github.com/smauto-dev/engine/infrastructure/resilience"
	"github.com/smauto-dev/engine/pkg/logger"
)

// AMQP is a Transport backed by a topic exchange on an AMQP broker. The
// engine's dot-separated topic namespace maps directly onto AMQP routing
// keys; a topic exchange already treats dots as the wildcard-matching
// separator, so no translation is needed here (unlike MQTT).
type AMQP struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
	log      *logger.Logger
}

// NewAMQP dials cfg and declares its topic exchange, retrying transient
// connection failures per retryCfg.
func NewAMQP(ctx context.Context, cfg *broker.Broker, log *logger.Logger, retryCfg resilience.RetryConfig) (*AMQP, error) {
	dsn := fmt.Sprintf("amqp://%s:%s@%s:%d/%s", cfg.Auth.Username, cfg.Auth.Password, cfg.Host, cfg.Port, cfg.VHost)

	var conn *amqp.Connection
	err := connectWithRetry(ctx, cfg.Name, retryCfg, func() error {
		c, dialErr := amqp.Dial(dsn)
		if dialErr != nil {
			return dialErr
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}
	if err := ch.ExchangeDeclare(cfg.TopicExchange, "topic", true, false, false, false, nil); err != nil {
		return nil, err
	}

	return &AMQP{conn: conn, ch: ch, exchange: cfg.TopicExchange, log: log}, nil
}

func (a *AMQP) Subscribe(ctx context.Context, topic string, handler MessageHandler) error {
	q, err := a.ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return err
	}
	if err := a.ch.QueueBind(q.Name, topic, a.exchange, false, nil); err != nil {
		return err
	}
	deliveries, err := a.ch.Consume(q.Name, "", true, true, false, false, nil)
	if err != nil {
		return err
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}
				handler(d.RoutingKey, d.Body)
			}
		}
	}()
	return nil
}

func (a *AMQP) Publish(ctx context.Context, topic string, payload []byte) error {
	return a.ch.PublishWithContext(ctx, a.exchange, topic, false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        payload,
	})
}

func (a *AMQP) Close() error {
	if err := a.ch.Close(); err != nil {
		return err
	}
	return a.conn.Close()
}
