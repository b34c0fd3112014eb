package eventbus

import (
	"testing"
	"time"
)

type event struct {
	ID int
}

func TestPublishSubscribe(t *testing.T) {
	bus := New[event]()
	defer bus.Close()

	sub := bus.Subscribe()
	bus.Publish(event{ID: 1})

	select {
	case e := <-sub:
		if e.ID != 1 {
			t.Fatalf("unexpected event: %+v", e)
		}
	case <-time.After(time.Second):
		t.Fatalf("event not delivered")
	}
}

func TestPublishNonBlocking(t *testing.T) {
	bus := New[event]()
	defer bus.Close()

	bus.Subscribe() // never drained

	done := make(chan struct{})
	go func() {
		for i := 0; i < subscriberBuffer*4; i++ {
			bus.Publish(event{ID: i})
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("publish blocked on a slow subscriber")
	}
}

func TestUnsubscribe(t *testing.T) {
	bus := New[event]()
	defer bus.Close()

	sub := bus.Subscribe()
	bus.Unsubscribe(sub)
	if _, ok := <-sub; ok {
		t.Fatalf("unsubscribed channel must be closed")
	}
	bus.Publish(event{ID: 1}) // no receiver, must not panic
}

func TestClose(t *testing.T) {
	bus := New[event]()
	sub := bus.Subscribe()
	bus.Close()
	if _, ok := <-sub; ok {
		t.Fatalf("close must close subscriber channels")
	}
	bus.Publish(event{ID: 1}) // closed bus drops events
	if _, ok := <-bus.Subscribe(); ok {
		t.Fatalf("subscribing after close must return a closed channel")
	}
	bus.Close() // idempotent
}
