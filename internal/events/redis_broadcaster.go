package events

import (
	"context"

	"leo-chat/internal/domain/message"
)

// RedisBroadcaster publishes events on ChannelChatEvents so that every instance's
// websocket hub can relay them to its own connections.
type RedisBroadcaster struct {
	publisher ChannelPublisher
	channel   string
}

func NewRedisBroadcaster(publisher ChannelPublisher) *RedisBroadcaster {
	return &RedisBroadcaster{publisher: publisher, channel: ChannelChatEvents}
}

func (b *RedisBroadcaster) Emit(ctx context.Context, event string, m message.Message) error {
	data, err := NewMessageEnvelope(event, m)
	if err != nil {
		return err
	}
	return b.publisher.Publish(ctx, b.channel, data)
}
