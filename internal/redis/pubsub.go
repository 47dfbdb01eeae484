package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// PubSub carries live chat events between service instances.
type PubSub struct {
	client *redis.Client
}

func NewPubSub(client *redis.Client) *PubSub {
	return &PubSub{client: client}
}

func (p *PubSub) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.client.Publish(ctx, channel, payload).Err()
}

// Subscribe hands every payload published on channels to handler. It blocks until
// ctx is done, returning ctx.Err(), or until the subscription is closed underneath it.
func (p *PubSub) Subscribe(ctx context.Context, channels []string, handler func(channel string, payload []byte)) error {
	sub := p.client.Subscribe(ctx, channels...)
	defer sub.Close()

	// Wait for the confirmation so publishes issued after Subscribe returns are not lost.
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("redis subscription closed")
			}
			handler(msg.Channel, []byte(msg.Payload))
		}
	}
}
