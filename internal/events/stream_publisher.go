package events

import (
	"context"
	"fmt"
)

// StreamQueuePublisher maps an exchange/routing key pair onto the Redis stream
// "<exchange>:<routingKey>".
type StreamQueuePublisher struct {
	streams StreamAppender
}

func NewStreamQueuePublisher(streams StreamAppender) *StreamQueuePublisher {
	return &StreamQueuePublisher{streams: streams}
}

func StreamName(exchange, routingKey string) string {
	return exchange + ":" + routingKey
}

func (p *StreamQueuePublisher) Publish(ctx context.Context, exchange, routingKey, payload, description string) error {
	_, err := p.streams.Append(ctx, StreamName(exchange, routingKey), map[string]interface{}{
		"routing_key": routingKey,
		"payload":     payload,
		"description": description,
	})
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", StreamName(exchange, routingKey), err)
	}
	return nil
}
