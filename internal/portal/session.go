package portal

import (
	"sort"
	"sync"
	"time"

	"portal/pkg/breakpoint"
	"portal/pkg/carousel"
	"portal/pkg/realtime"
)

// BannerCarousel is the name of the home page carousel.
const BannerCarousel = "banner"

// Session is one viewer of the portal: the width their browser reports, the
// observer classifying it, and the carousels mounted on their page.
type Session struct {
	ID        string
	CreatedAt time.Time
	Viewport  *breakpoint.ReportedViewport
	Observer  *breakpoint.Observer

	mu         sync.Mutex
	carousels  map[string]*carousel.Carousel
	tickPeriod time.Duration
	cadence    realtime.Cadence
	lastSeen   time.Time
}

func newSession(id string, now time.Time, tickPeriod time.Duration, vp *breakpoint.ReportedViewport, obs *breakpoint.Observer) *Session {
	return &Session{
		ID:         id,
		CreatedAt:  now,
		Viewport:   vp,
		Observer:   obs,
		carousels:  make(map[string]*carousel.Carousel),
		tickPeriod: tickPeriod,
		cadence:    realtime.NewCadence(tickPeriod),
		lastSeen:   now,
	}
}

// Mount attaches a carousel under name, replacing any previous one.
func (s *Session) Mount(name string, c *carousel.Carousel) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carousels[name] = c
}

// Carousel returns the carousel mounted under name.
func (s *Session) Carousel(name string) (*carousel.Carousel, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carousels[name]
	return c, ok
}

// CarouselNames returns mounted carousel names in sorted order.
func (s *Session) CarouselNames() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.carousels))
	for name := range s.carousels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Layout derives the current layout from the observer.
func (s *Session) Layout() Layout {
	return LayoutFor(s.Observer.Read().Tier)
}

// Touch records activity for idle reaping.
func (s *Session) Touch(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.After(s.lastSeen) {
		s.lastSeen = now
	}
}

// LastSeen returns the last recorded activity.
func (s *Session) LastSeen() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// Advance applies every tick that came due since the last call to all mounted
// carousels. It returns when the next tick is due and whether any carousel
// moved.
func (s *Session) Advance(now time.Time) (next time.Time, changed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.cadence.Active() {
		s.cadence.Start(now)
	}
	due := s.cadence.Due(now)
	for i := 0; i < due; i++ {
		for _, c := range s.carousels {
			if c.State().Playing {
				c.Tick(s.tickPeriod)
				changed = true
			}
		}
	}
	next, _ = s.cadence.NextWake(now)
	return next, changed
}
