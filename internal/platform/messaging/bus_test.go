package messaging

import (
	"context"
	"testing"
	"time"

	"electra/internal/shared/events"
)

func TestPublishDeliversToSubscriber(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := NewBus(nil)
	received := make(chan events.Envelope, 1)
	bus.Subscribe(ctx, "vote.cast", func(_ context.Context, event events.Envelope) error {
		received <- event
		return nil
	})

	envelope := events.Envelope{EventID: "event-1", EventType: "vote.cast"}
	if err := bus.Publish(ctx, "vote.cast", envelope); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	select {
	case got := <-received:
		if got.EventID != "event-1" {
			t.Fatalf("unexpected event: %+v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber never received the event")
	}
}

func TestPublishToUnknownTopicSucceeds(t *testing.T) {
	bus := NewBus(nil)
	if err := bus.Publish(context.Background(), "nobody-listens", events.Envelope{EventID: "event-1"}); err != nil {
		t.Fatalf("publish without subscribers failed: %v", err)
	}
}

// A subscriber that stops draining must fail the publish rather than lose the
// event; the outbox relay keeps the row pending and retries it later.
func TestPublishFailsWhenSubscriberStalls(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	bus := NewBus(nil)
	stall := make(chan struct{})
	defer close(stall)
	bus.Subscribe(ctx, "vote.cast", func(_ context.Context, _ events.Envelope) error {
		<-stall
		return nil
	})

	// The subscriber buffer plus one in-flight event bound how many publishes
	// can succeed; well past that, a publish must report the failed delivery.
	var failed bool
	for i := 0; i < 200; i++ {
		if err := bus.Publish(ctx, "vote.cast", events.Envelope{EventID: "event"}); err != nil {
			failed = true
			break
		}
	}
	if !failed {
		t.Fatal("expected a publish to fail once the subscriber stalled")
	}
}
