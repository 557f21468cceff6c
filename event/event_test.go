package event

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/awantoch/kwanixflow/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_RoundTrip(t *testing.T) {
	bus := NewInProcEventBus()
	defer bus.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	received := make(chan map[string]any, 1)
	require.NoError(t, bus.Subscribe(ctx, "item.created", func(topic string, payload map[string]any) {
		assert.Equal(t, "item.created", topic)
		received <- payload
	}))

	require.NoError(t, bus.Publish("item.created", map[string]any{"item_id": "item-1"}))

	select {
	case got := <-received:
		assert.Equal(t, "item-1", got["item_id"])
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}
}

func TestSubscribeAll(t *testing.T) {
	bus := NewInProcEventBus()
	defer bus.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var mu sync.Mutex
	var topics []string
	done := make(chan struct{}, 2)
	require.NoError(t, SubscribeAll(ctx, bus, func(topic string, _ map[string]any) {
		mu.Lock()
		topics = append(topics, topic)
		mu.Unlock()
		done <- struct{}{}
	}))

	require.NoError(t, bus.Publish("edge.connected", map[string]any{}))
	require.NoError(t, bus.Publish("session.reset", map[string]any{}))
	for i := 0; i < 2; i++ {
		select {
		case <-done:
		case <-ctx.Done():
			t.Fatal("timed out waiting for events")
		}
	}
	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"edge.connected", "session.reset"}, topics)
}

func TestPublish_Unmarshalable(t *testing.T) {
	bus := NewInProcEventBus()
	defer bus.Close()
	assert.Error(t, bus.Publish("x", map[string]any{"ch": make(chan int)}))
}

func TestNewEventBusFromConfig(t *testing.T) {
	bus, err := NewEventBusFromConfig(nil)
	require.NoError(t, err)
	assert.NotNil(t, bus)

	bus, err = NewEventBusFromConfig(&config.EventConfig{Driver: "memory"})
	require.NoError(t, err)
	assert.NotNil(t, bus)

	_, err = NewEventBusFromConfig(&config.EventConfig{Driver: "nats"})
	assert.Error(t, err)

	_, err = NewEventBusFromConfig(&config.EventConfig{Driver: "kafka"})
	assert.Error(t, err)
}
