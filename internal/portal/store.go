package portal

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"k8s.io/utils/clock"

	"portal/internal/content"
	"portal/pkg/breakpoint"
	"portal/pkg/carousel"
	"portal/pkg/realtime"
)

// Events published to a session's SSE stream.
const (
	EventCarousel realtime.Event = "carousel"
	EventLayout   realtime.Event = "layout"
)

// Store holds viewer sessions and delegates to realtime.RoomStore for
// broadcast and the autoplay loops.
type Store struct {
	r          *realtime.RoomStore[*Session]
	clock      clock.WithDelayedExecution
	log        *zap.Logger
	banner     content.Banner
	tickPeriod time.Duration
	debounce   time.Duration
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock injects the clock used by autoplay loops and resize debouncing.
func WithClock(c clock.WithDelayedExecution) StoreOption {
	return func(s *Store) { s.clock = c }
}

// WithLogger sets the store logger.
func WithLogger(log *zap.Logger) StoreOption {
	return func(s *Store) { s.log = log }
}

// WithTickPeriod overrides the autoplay tick period.
func WithTickPeriod(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.tickPeriod = d
		}
	}
}

// WithDebounce overrides the resize debounce window of new sessions.
func WithDebounce(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.debounce = d
		}
	}
}

// NewStore creates an in-memory session store that mounts banner on every
// new session.
func NewStore(banner content.Banner, opts ...StoreOption) *Store {
	s := &Store{
		clock:      clock.RealClock{},
		log:        zap.NewNop(),
		banner:     banner,
		tickPeriod: carousel.DefaultTickPeriod,
		debounce:   breakpoint.DefaultDebounce,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.r = realtime.NewRoomStoreWithClock[*Session](s.clock)
	return s
}

// CreateSession registers a new viewer. widthHint is the width the browser
// reported with the page request, or 0 if unknown.
func (s *Store) CreateSession(widthHint int) (*Session, error) {
	banner, err := carousel.New(s.banner.Slides, s.banner.Interval)
	if err != nil {
		return nil, fmt.Errorf("mount banner: %w", err)
	}
	if widthHint <= 0 {
		widthHint = breakpoint.DefaultWidth
	}

	id := uuid.NewString()
	vp := breakpoint.NewReportedViewport(widthHint)
	obs := breakpoint.NewObserver(vp,
		breakpoint.WithClock(s.clock),
		breakpoint.WithDebounce(s.debounce),
		breakpoint.WithLogger(s.log.With(zap.String("session", id))),
	)
	sess := newSession(id, s.clock.Now().UTC(), s.tickPeriod, vp, obs)
	sess.Mount(BannerCarousel, banner)
	obs.Subscribe(func(st breakpoint.State) {
		s.r.Publish(id, EventLayout)
	})

	s.r.Create(id, sess)
	s.log.Debug("session created",
		zap.String("session", id),
		zap.Int("width", widthHint),
		zap.Stringer("tier", obs.Read().Tier),
	)
	return sess, nil
}

// GetSession returns a session by ID if it exists.
func (s *Store) GetSession(id string) (*Session, bool) {
	room, ok := s.r.Get(id)
	if !ok {
		return nil, false
	}
	return room.State, true
}

// Subscribe opens an event subscription for a session.
func (s *Store) Subscribe(id string) (*realtime.Subscription, bool) {
	room, ok := s.r.Get(id)
	if !ok {
		return nil, false
	}
	return room.Hub().Subscribe(), true
}

// Publish notifies subscribers of a session update with a typed event.
func (s *Store) Publish(id string, event realtime.Event) {
	s.r.Publish(id, event)
}

// EnsureAutoplay starts the tick loop for a session if not already running.
func (s *Store) EnsureAutoplay(id string) {
	getState := func() *Session {
		room, ok := s.r.Get(id)
		if !ok {
			return nil
		}
		return room.State
	}
	tick := func(sess *Session, now time.Time) (time.Time, []realtime.Event, bool) {
		if sess == nil {
			return time.Time{}, nil, true
		}
		next, changed := sess.Advance(now)
		if changed {
			return next, []realtime.Event{EventCarousel}, false
		}
		return next, nil, false
	}
	s.r.RunLoop(id, getState, tick)
}

// AutoplayRunning reports whether the session's tick loop is active.
func (s *Store) AutoplayRunning(id string) bool {
	return s.r.Running(id)
}

// Close tears a session down: the tick loop is stopped, subscribers are
// closed and the breakpoint observer disposed. No timer callback for the
// session runs after Close returns.
func (s *Store) Close(id string) bool {
	sess, ok := s.r.Delete(id)
	if !ok {
		return false
	}
	sess.Observer.Dispose()
	s.log.Debug("session closed", zap.String("session", id))
	return true
}

// Reap closes sessions idle for longer than maxIdle and returns how many it closed.
func (s *Store) Reap(maxIdle time.Duration) int {
	cutoff := s.clock.Now().UTC().Add(-maxIdle)
	closed := 0
	for _, id := range s.r.IDs() {
		sess, ok := s.GetSession(id)
		if !ok || sess.LastSeen().After(cutoff) {
			continue
		}
		if s.Close(id) {
			closed++
		}
	}
	if closed > 0 {
		s.log.Info("reaped idle sessions", zap.Int("count", closed), zap.Int("remaining", s.r.Len()))
	}
	return closed
}

// CloseAll tears down every session.
func (s *Store) CloseAll() {
	for _, id := range s.r.IDs() {
		s.Close(id)
	}
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.r.Len()
}

// Clock returns the store clock.
func (s *Store) Clock() clock.PassiveClock {
	return s.clock
}
