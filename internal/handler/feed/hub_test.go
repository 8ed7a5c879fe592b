package feed

import (
	"testing"
	"time"

	"github.com/nvx-labs/scamtrap/internal/service/engagement"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub(nil)

	all, cancelAll := hub.subscribe("")
	defer cancelAll()
	onlyS1, cancelS1 := hub.subscribe("s1")
	defer cancelS1()

	hub.Publish(engagement.Event{Type: "message", SessionID: "s2"})
	hub.Publish(engagement.Event{Type: "reported", SessionID: "s1"})

	if ev := mustReceive(t, all); ev.SessionID != "s2" {
		t.Fatalf("expected s2 first on unfiltered feed, got %s", ev.SessionID)
	}
	if ev := mustReceive(t, all); ev.SessionID != "s1" {
		t.Fatalf("expected s1 second on unfiltered feed, got %s", ev.SessionID)
	}

	if ev := mustReceive(t, onlyS1); ev.SessionID != "s1" || ev.Type != "reported" {
		t.Fatalf("filtered feed got wrong event: %+v", ev)
	}
	select {
	case ev := <-onlyS1:
		t.Fatalf("filtered feed leaked event: %+v", ev)
	default:
	}
}

func TestHubDropsSlowSubscriber(t *testing.T) {
	hub := NewHub(nil)

	events, cancel := hub.subscribe("")
	defer cancel()

	// Never read; overflow the buffer and trip the drop path.
	for i := 0; i < subscriberBuffer+1; i++ {
		hub.Publish(engagement.Event{Type: "message", SessionID: "s1"})
	}

	drained := 0
	for range events {
		drained++
	}
	if drained != subscriberBuffer {
		t.Fatalf("expected a closed channel with %d buffered events, drained %d", subscriberBuffer, drained)
	}

	// Publishing after the drop must not panic or block.
	hub.Publish(engagement.Event{Type: "message", SessionID: "s1"})
}

func TestHubCancelIsIdempotent(t *testing.T) {
	hub := NewHub(nil)

	_, cancel := hub.subscribe("")
	cancel()
	cancel()
}

func mustReceive(t *testing.T, ch <-chan engagement.Event) engagement.Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return engagement.Event{}
	}
}
