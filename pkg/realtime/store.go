package realtime

import (
	"context"
	"sync"
	"time"

	"k8s.io/utils/clock"
)

// Room holds state and a broadcaster for one room.
type Room[T any] struct {
	ID    string
	State T
	hub   *Broadcaster
}

// Hub returns the room's broadcaster.
func (r *Room[T]) Hub() *Broadcaster {
	return r.hub
}

type loop struct {
	cancel context.CancelFunc
	wake   chan struct{}
	done   chan struct{}
}

// RoomStore manages rooms, their broadcasters and their timing loops.
type RoomStore[T any] struct {
	clock clock.Clock

	mu    sync.RWMutex
	rooms map[string]*Room[T]
	loops map[string]*loop
}

// NewRoomStore creates an empty room store driven by the real clock.
func NewRoomStore[T any]() *RoomStore[T] {
	return NewRoomStoreWithClock[T](clock.RealClock{})
}

// NewRoomStoreWithClock creates an empty room store whose loops use c.
func NewRoomStoreWithClock[T any](c clock.Clock) *RoomStore[T] {
	return &RoomStore[T]{
		clock: c,
		rooms: make(map[string]*Room[T]),
		loops: make(map[string]*loop),
	}
}

// Create adds a room with the given id and state, and a new Broadcaster.
func (s *RoomStore[T]) Create(id string, state T) *Room[T] {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := &Room[T]{ID: id, State: state, hub: NewBroadcaster()}
	s.rooms[id] = r
	return r
}

// Get returns the room by ID if it exists.
func (s *RoomStore[T]) Get(id string) (*Room[T], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	return r, ok
}

// IDs returns the ids of all rooms.
func (s *RoomStore[T]) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.rooms))
	for id := range s.rooms {
		ids = append(ids, id)
	}
	return ids
}

// Len returns the number of rooms.
func (s *RoomStore[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// Publish notifies subscribers of the room's broadcaster. Unknown rooms are ignored.
func (s *RoomStore[T]) Publish(id string, event Event) {
	if r, ok := s.Get(id); ok {
		r.hub.Publish(event)
	}
}

// Delete stops the room's loop, closes its broadcaster and forgets it.
func (s *RoomStore[T]) Delete(id string) (T, bool) {
	s.StopLoop(id)
	s.mu.Lock()
	r, ok := s.rooms[id]
	delete(s.rooms, id)
	s.mu.Unlock()
	if !ok {
		var zero T
		return zero, false
	}
	r.hub.Close()
	return r.State, true
}

// TickFunc is called by RunLoop to determine the next wake time and events to publish.
// stop true means exit the loop.
type TickFunc[T any] func(state T, now time.Time) (next time.Time, events []Event, stop bool)

// RunLoop starts a timing loop for the room. If a loop already exists for id, it is not started again.
func (s *RoomStore[T]) RunLoop(id string, getState func() T, tick TickFunc[T]) {
	s.mu.Lock()
	if _, ok := s.loops[id]; ok {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	l := &loop{
		cancel: cancel,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	s.loops[id] = l
	s.mu.Unlock()

	go func() {
		defer close(l.done)
		defer func() {
			s.mu.Lock()
			if s.loops[id] == l {
				delete(s.loops, id)
			}
			s.mu.Unlock()
		}()

		for {
			if ctx.Err() != nil {
				return
			}
			state := getState()
			now := s.clock.Now().UTC()
			next, events, stop := tick(state, now)
			if stop {
				return
			}
			for _, e := range events {
				s.Publish(id, e)
			}
			wait := next.Sub(now)
			if wait < 0 {
				wait = 0
			}
			timer := s.clock.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C():
			case <-l.wake:
				if !timer.Stop() {
					select {
					case <-timer.C():
					default:
					}
				}
			}
		}
	}()
}

// Running reports whether a loop is active for id.
func (s *RoomStore[T]) Running(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.loops[id]
	return ok
}

// Wake unblocks the room's loop so it recomputes immediately.
func (s *RoomStore[T]) Wake(id string) {
	s.mu.RLock()
	l, ok := s.loops[id]
	s.mu.RUnlock()
	if !ok {
		return
	}
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// StopLoop cancels the room's loop and waits for it to exit, so the tick
// function is never invoked after StopLoop returns. It must not be called
// from inside the tick function.
func (s *RoomStore[T]) StopLoop(id string) {
	s.mu.RLock()
	l, ok := s.loops[id]
	s.mu.RUnlock()
	if !ok {
		return
	}
	l.cancel()
	<-l.done
}
