package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-nats/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	stan "github.com/nats-io/stan.go"
)

// WatermillEventBus satisfies our EventBus interface using Watermill.
type WatermillEventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	// shared is set when publisher and subscriber are the same pub/sub.
	shared bool
}

var _ EventBus = (*WatermillEventBus)(nil)

// NewWatermillInMemBus returns a Watermill-based, in-memory bus.
func NewWatermillInMemBus() *WatermillEventBus {
	logger := watermill.NewStdLogger(false, false)
	ps := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 100}, logger)
	return &WatermillEventBus{publisher: ps, subscriber: ps, shared: true}
}

// NewWatermillNATSBus returns a NATS-streaming-backed bus.
func NewWatermillNATSBus(clusterID, clientID, url string) (*WatermillEventBus, error) {
	logger := watermill.NewStdLogger(false, false)
	pub, err := nats.NewStreamingPublisher(nats.StreamingPublisherConfig{
		ClusterID: clusterID,
		ClientID:  clientID + "-pub",
		StanOptions: []stan.Option{
			stan.NatsURL(url),
		},
		Marshaler: nats.GobMarshaler{},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("nats publisher: %w", err)
	}
	sub, err := nats.NewStreamingSubscriber(nats.StreamingSubscriberConfig{
		ClusterID: clusterID,
		ClientID:  clientID + "-sub",
		StanOptions: []stan.Option{
			stan.NatsURL(url),
		},
		Unmarshaler:    nats.GobMarshaler{},
		CloseTimeout:   30 * time.Second,
		AckWaitTimeout: 30 * time.Second,
	}, logger)
	if err != nil {
		pub.Close()
		return nil, fmt.Errorf("nats subscriber: %w", err)
	}
	return &WatermillEventBus{publisher: pub, subscriber: sub}, nil
}

// Publish sends payload as a JSON message on topic.
func (b *WatermillEventBus) Publish(topic string, payload map[string]any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), data)
	return b.publisher.Publish(topic, msg)
}

// Subscribe delivers messages on topic to handler until ctx is done.
func (b *WatermillEventBus) Subscribe(ctx context.Context, topic string, handler Handler) error {
	ch, err := b.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return err
	}
	go func() {
		for msg := range ch {
			var payload map[string]any
			if err := json.Unmarshal(msg.Payload, &payload); err != nil {
				payload = map[string]any{"raw": string(msg.Payload)}
			}
			handler(topic, payload)
			msg.Ack()
		}
	}()
	return nil
}

func (b *WatermillEventBus) Close() error {
	if err := b.publisher.Close(); err != nil {
		return err
	}
	if b.shared {
		return nil
	}
	return b.subscriber.Close()
}
