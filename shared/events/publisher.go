package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultMaxLen caps each stream at roughly this many entries.
const DefaultMaxLen = 10000

// Streamer is the part of a Redis client the publisher needs.
type Streamer interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// Publisher appends JSON envelopes to Redis streams. Consumers read the
// "event" field of each entry.
type Publisher struct {
	client Streamer
	maxLen int64
	now    func() time.Time
}

// NewPublisher trims streams to about maxLen entries; zero or less means
// DefaultMaxLen.
func NewPublisher(client Streamer, maxLen int64) *Publisher {
	if maxLen <= 0 {
		maxLen = DefaultMaxLen
	}
	return &Publisher{client: client, maxLen: maxLen, now: time.Now}
}

func (p *Publisher) Publish(ctx context.Context, stream, eventType string, data any) error {
	payload, err := json.Marshal(Event{
		Type:      eventType,
		Timestamp: p.now().UTC(),
		Data:      data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}

	err = p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]any{"event": string(payload)},
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to publish %s event to %s: %w", eventType, stream, err)
	}
	return nil
}
