package relay

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestHubBroadcastToAllSubscribers(t *testing.T) {
	hub := NewHub()

	sub1 := hub.Subscribe()
	defer sub1.Close()
	sub2 := hub.Subscribe()
	defer sub2.Close()

	hub.Broadcast("test:event", map[string]any{"key": "value"})

	for i, sub := range []*Subscriber{sub1, sub2} {
		select {
		case ev := <-sub.Events():
			if ev.Name != "test:event" {
				t.Errorf("Subscriber %d: expected event name 'test:event', got '%s'", i+1, ev.Name)
			}
		case <-time.After(time.Second):
			t.Fatalf("Subscriber %d: timed out waiting for event", i+1)
		}
	}
}

func TestHubLateSubscriberMissesEvent(t *testing.T) {
	hub := NewHub()

	hub.Broadcast("early:event", nil)

	sub := hub.Subscribe()
	defer sub.Close()

	select {
	case ev := <-sub.Events():
		t.Errorf("Expected no event, got '%s'", ev.Name)
	case <-time.After(50 * time.Millisecond):
		// no replay, as expected
	}
}

func TestHubClosedSubscriberRemoved(t *testing.T) {
	hub := NewHub()

	sub := hub.Subscribe()
	if hub.Count() != 1 {
		t.Fatalf("Expected 1 subscriber, got %d", hub.Count())
	}

	sub.Close()
	if hub.Count() != 0 {
		t.Errorf("Expected 0 subscribers after close, got %d", hub.Count())
	}

	// Broadcasting after close must not panic
	hub.Broadcast("after:close", nil)

	// Closed channel yields zero values
	if _, ok := <-sub.Events(); ok {
		t.Error("Expected closed event channel")
	}
}

func TestHubCloseIdempotent(t *testing.T) {
	hub := NewHub()
	sub := hub.Subscribe()

	sub.Close()
	sub.Close() // must not panic
}

func TestHubSlowSubscriberDoesNotBlockBroadcast(t *testing.T) {
	hub := NewHub()

	sub := hub.Subscribe()
	defer sub.Close()

	// Never drain; overflow the buffer
	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*2; i++ {
			hub.Broadcast("flood", i)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Broadcast blocked on a slow subscriber")
	}
}

func TestHubConcurrentSubscribeBroadcast(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			sub := hub.Subscribe()
			time.Sleep(time.Millisecond)
			sub.Close()
		}(i)
		go func(n int) {
			defer wg.Done()
			hub.Broadcast("concurrent", fmt.Sprintf("payload-%d", n))
		}(i)
	}
	wg.Wait()

	if hub.Count() != 0 {
		t.Errorf("Expected 0 subscribers at end, got %d", hub.Count())
	}
}
