package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBus_PublishDeliversToSubscribers(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	var received []Event
	bus.Subscribe(EventTypeDrawIngested, func(ctx context.Context, event Event) {
		received = append(received, event)
	})

	event := DrawIngestedEvent{DrawNo: 42, Numbers: []int{1, 2, 3, 4, 5, 6}, Bonus: 7}
	bus.Publish(ctx, event)

	require.Len(t, received, 1)
	assert.Equal(t, event, received[0])
}

func TestBus_PublishWithoutSubscribers(t *testing.T) {
	bus := NewBus()
	bus.Publish(context.Background(), DrawIngestedEvent{DrawNo: 1})
}

func TestBus_MultipleSubscribers(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	calls := 0
	for i := 0; i < 3; i++ {
		bus.Subscribe(EventTypeDrawIngested, func(ctx context.Context, event Event) {
			calls++
		})
	}

	bus.Publish(ctx, DrawIngestedEvent{DrawNo: 1})
	assert.Equal(t, 3, calls)
}

func TestBus_PanickingHandlerDoesNotBlockOthers(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	delivered := false
	bus.Subscribe(EventTypeDrawIngested, func(ctx context.Context, event Event) {
		panic("handler failure")
	})
	bus.Subscribe(EventTypeDrawIngested, func(ctx context.Context, event Event) {
		delivered = true
	})

	bus.Publish(ctx, DrawIngestedEvent{DrawNo: 1})
	assert.True(t, delivered)
}

func TestBus_DeliveryIsSynchronous(t *testing.T) {
	bus := NewBus()
	ctx := context.Background()

	done := false
	bus.Subscribe(EventTypeDrawIngested, func(ctx context.Context, event Event) {
		done = true
	})

	bus.Publish(ctx, DrawIngestedEvent{DrawNo: 1})
	// No synchronization needed: Publish returns after all handlers ran.
	assert.True(t, done)
}
