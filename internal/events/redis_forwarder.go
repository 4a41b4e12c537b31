package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const defaultPublishTimeout = 2 * time.Second

// ChannelPublisher publishes raw payloads on a named channel.
type ChannelPublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// RedisForwarder relays events as JSON onto a pub/sub channel so that
// out-of-process consumers (such as a mailer) can react to them.
type RedisForwarder struct {
	publisher ChannelPublisher
	channel   string
	timeout   time.Duration
}

// NewRedisForwarder builds a forwarder for channel. Each publish is bounded
// by timeout. A non-positive timeout selects the default.
func NewRedisForwarder(publisher ChannelPublisher, channel string, timeout time.Duration) *RedisForwarder {
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}
	return &RedisForwarder{publisher: publisher, channel: channel, timeout: timeout}
}

// Handle is an EventHandler.
func (f *RedisForwarder) Handle(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	if err := f.publisher.Publish(ctx, f.channel, payload); err != nil {
		return fmt.Errorf("publish event %s: %w", event.ID, err)
	}
	return nil
}

// Register subscribes the forwarder to the given event types.
func (f *RedisForwarder) Register(d Dispatcher, types ...EventType) {
	for _, t := range types {
		d.Subscribe(t, f.Handle)
	}
}
