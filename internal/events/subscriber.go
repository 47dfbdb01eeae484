package events

import "context"

// Subscriber delivers pub/sub payloads until ctx is cancelled.
type Subscriber interface {
	Subscribe(ctx context.Context, channels []string, handler func(channel string, payload []byte)) error
}
