package transport

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/smauto-dev/engine/domain/broker"
	"github.com/smauto-dev/engine/infrastructure/resilience"
	"github.com/smauto-dev/engine/pkg/logger"
)

// Redis is a Transport backed by go-redis Pub/Sub; the engine's canonical
// dot-separated topic is used directly as the channel name.
type Redis struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRedis connects to cfg, retrying transient failures per retryCfg.
func NewRedis(ctx context.Context, cfg *broker.Broker, log *logger.Logger, retryCfg resilience.RetryConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Auth.Password,
		DB:       cfg.DB,
	})

	err := connectWithRetry(ctx, cfg.Name, retryCfg, func() error {
		return client.Ping(ctx).Err()
	})
	if err != nil {
		return nil, err
	}

	return &Redis{client: client, log: log}, nil
}

func (r *Redis) Subscribe(ctx context.Context, topic string, handler MessageHandler) error {
	sub := r.client.Subscribe(ctx, topic)
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				handler(msg.Channel, []byte(msg.Payload))
			}
		}
	}()
	return nil
}

func (r *Redis) Publish(ctx context.Context, topic string, payload []byte) error {
	return r.client.Publish(ctx, topic, payload).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
