package event

import (
	"context"
	"fmt"

	"github.com/awantoch/kwanixflow/config"
	"github.com/awantoch/kwanixflow/constants"
)

// Handler receives a decoded event payload.
type Handler func(topic string, payload map[string]any)

type EventBus interface {
	Publish(topic string, payload map[string]any) error
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}

// NewInProcEventBus returns a new in-memory event bus. Used when event config driver=="memory" or omitted.
func NewInProcEventBus() *WatermillEventBus {
	return NewWatermillInMemBus()
}

// NewEventBusFromConfig returns an EventBus based on config. Supported: memory (default), nats (with url).
func NewEventBusFromConfig(cfg *config.EventConfig) (EventBus, error) {
	if cfg == nil || cfg.Driver == "" || cfg.Driver == constants.EventDriverMemory {
		return NewWatermillInMemBus(), nil
	}
	switch cfg.Driver {
	case constants.EventDriverNATS:
		if cfg.URL == "" {
			return nil, fmt.Errorf("NATS driver requires url")
		}
		return NewWatermillNATSBus(constants.ServiceName, constants.ServiceName+"-client", cfg.URL)
	default:
		return nil, fmt.Errorf("unsupported event bus driver: %s", cfg.Driver)
	}
}

// SubscribeAll subscribes handler to every topic the service publishes.
func SubscribeAll(ctx context.Context, bus EventBus, handler Handler) error {
	for _, topic := range constants.AllTopics {
		if err := bus.Subscribe(ctx, topic, handler); err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
	}
	return nil
}
