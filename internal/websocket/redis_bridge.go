package websocket

import (
	"context"

	"leo-chat/internal/events"
)

// RedisBridge relays events published by any instance to this instance's hub.
type RedisBridge struct {
	subscriber events.Subscriber
	hub        *Hub
}

func NewRedisBridge(subscriber events.Subscriber, hub *Hub) *RedisBridge {
	return &RedisBridge{subscriber: subscriber, hub: hub}
}

func (b *RedisBridge) Run(ctx context.Context) error {
	return b.subscriber.Subscribe(ctx, []string{events.ChannelChatEvents}, func(channel string, payload []byte) {
		b.hub.Relay(payload)
	})
}
