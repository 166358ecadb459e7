package realtime

import (
	"testing"
)

func TestNewBroadcaster(t *testing.T) {
	b := NewBroadcaster()
	if b == nil {
		t.Fatal("NewBroadcaster returned nil")
	}
	if b.Len() != 0 {
		t.Errorf("Len %d, want 0", b.Len())
	}
}

func TestBroadcaster_PublishDeliversToSubscriber(t *testing.T) {
	b := NewBroadcaster()
	sub := b.Subscribe()
	defer sub.Close()

	b.Publish("carousel")
	got := <-sub.C
	if got != "carousel" {
		t.Errorf("got event %q, want %q", got, "carousel")
	}
}

func TestBroadcaster_PublishDeliversToMultipleSubscribers(t *testing.T) {
	b := NewBroadcaster()
	s1 := b.Subscribe()
	s2 := b.Subscribe()
	defer s1.Close()
	defer s2.Close()

	b.Publish("layout")
	if got := <-s1.C; got != "layout" {
		t.Errorf("s1 got %q, want layout", got)
	}
	if got := <-s2.C; got != "layout" {
		t.Errorf("s2 got %q, want layout", got)
	}
}

func TestBroadcaster_CloseSubscriptionClosesChannel(t *testing.T) {
	b := NewBroadcaster()
	sub := b.Subscribe()
	sub.Close()
	sub.Close()
	if _, open := <-sub.C; open {
		t.Error("channel should be closed after Close")
	}
	if b.Len() != 0 {
		t.Errorf("Len %d, want 0", b.Len())
	}
}

func TestBroadcaster_PublishDoesNotBlockOnLaggingSubscriber(t *testing.T) {
	b := NewBroadcaster()
	sub := b.Subscribe()
	defer sub.Close()
	for i := 0; i < subscriberBuffer*3; i++ {
		b.Publish("carousel")
	}
	if got := len(sub.C); got != subscriberBuffer {
		t.Errorf("buffered %d events, want %d", got, subscriberBuffer)
	}
}

func TestBroadcaster_Close(t *testing.T) {
	b := NewBroadcaster()
	s1 := b.Subscribe()
	b.Close()
	b.Close()
	if _, open := <-s1.C; open {
		t.Error("existing subscription should be closed")
	}
	s2 := b.Subscribe()
	if _, open := <-s2.C; open {
		t.Error("subscribing after Close should yield a closed subscription")
	}
	s1.Close()
	b.Publish("layout")
}
