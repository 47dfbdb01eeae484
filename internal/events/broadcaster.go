package events

import (
	"context"

	"leo-chat/internal/domain/message"
)

// ChannelChatEvents is the pub/sub channel every instance relays to its live subscribers.
const ChannelChatEvents = "chat:events"

// Broadcaster pushes a message to every live subscriber. Delivery is best effort:
// there is no acknowledgement and nothing is queued for offline subscribers.
type Broadcaster interface {
	Emit(ctx context.Context, event string, m message.Message) error
}

// QueuePublisher hands a serialized payload to the downstream notification pipeline.
type QueuePublisher interface {
	Publish(ctx context.Context, exchange, routingKey, payload, description string) error
}

// ChannelPublisher is the transport a RedisBroadcaster writes through.
type ChannelPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// StreamAppender is the transport a StreamQueuePublisher writes through.
type StreamAppender interface {
	Append(ctx context.Context, stream string, values map[string]interface{}) (string, error)
}
