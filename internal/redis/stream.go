package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// StreamWriter appends entries to Redis streams. Consumers read them through
// consumer groups, which gives the at-least-once delivery the queue layer promises.
type StreamWriter struct {
	client *redis.Client
	maxLen int64
}

func NewStreamWriter(client *redis.Client, maxLen int64) *StreamWriter {
	return &StreamWriter{client: client, maxLen: maxLen}
}

// Append adds one entry to stream and returns the id Redis assigned to it.
func (w *StreamWriter) Append(ctx context.Context, stream string, values map[string]interface{}) (string, error) {
	args := &redis.XAddArgs{
		Stream: stream,
		Values: values,
	}
	if w.maxLen > 0 {
		args.MaxLen = w.maxLen
		args.Approx = true
	}
	return w.client.XAdd(ctx, args).Result()
}
