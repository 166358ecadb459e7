package portal

import (
	"testing"
	"time"

	"portal/pkg/breakpoint"
	"portal/pkg/carousel"
)

func newTestSession(t *testing.T, interval time.Duration) (*Session, *carousel.Carousel) {
	t.Helper()
	vp := breakpoint.NewReportedViewport(1280)
	obs := breakpoint.NewObserver(vp)
	t.Cleanup(obs.Dispose)
	s := newSession("s1", time.Now().UTC(), 50*time.Millisecond, vp, obs)
	c, err := carousel.New([]carousel.Slide{{Image: "a"}, {Image: "b"}}, interval)
	if err != nil {
		t.Fatalf("carousel.New: %v", err)
	}
	s.Mount(BannerCarousel, c)
	return s, c
}

func TestSession_Advance(t *testing.T) {
	now := time.Now().UTC()
	s, c := newTestSession(t, time.Second)

	next, changed := s.Advance(now)
	if changed {
		t.Error("first Advance only anchors the cadence")
	}
	if want := now.Add(50 * time.Millisecond); !next.Equal(want) {
		t.Errorf("next %v, want %v", next, want)
	}

	_, changed = s.Advance(now.Add(500 * time.Millisecond))
	if !changed {
		t.Error("Advance after due ticks should report a change")
	}
	if st := c.State(); st.Progress < 49.99 || st.Progress > 50.01 {
		t.Errorf("progress %v, want 50", st.Progress)
	}

	_, _ = s.Advance(now.Add(time.Second))
	if st := c.State(); st.Index != 1 || st.Progress != 0 {
		t.Errorf("state %+v, want index 1 progress 0", st)
	}
}

func TestSession_Advance_PausedReportsNoChange(t *testing.T) {
	now := time.Now().UTC()
	s, c := newTestSession(t, time.Second)
	c.TogglePlay()
	s.Advance(now)
	if _, changed := s.Advance(now.Add(time.Second)); changed {
		t.Error("paused carousel should not report change")
	}
	if c.State().Progress != 0 {
		t.Error("paused carousel progressed")
	}
}

func TestSession_CarouselLookup(t *testing.T) {
	s, c := newTestSession(t, time.Second)
	got, ok := s.Carousel(BannerCarousel)
	if !ok || got != c {
		t.Fatal("banner carousel not found")
	}
	if _, ok := s.Carousel("missing"); ok {
		t.Error("unknown carousel should not be found")
	}
	if names := s.CarouselNames(); len(names) != 1 || names[0] != BannerCarousel {
		t.Errorf("CarouselNames %v", names)
	}
}

func TestSession_Touch(t *testing.T) {
	s, _ := newTestSession(t, time.Second)
	before := s.LastSeen()
	s.Touch(before.Add(-time.Minute))
	if !s.LastSeen().Equal(before) {
		t.Error("Touch must not move LastSeen backwards")
	}
	s.Touch(before.Add(time.Minute))
	if !s.LastSeen().Equal(before.Add(time.Minute)) {
		t.Error("Touch did not record activity")
	}
}

func TestSession_Layout(t *testing.T) {
	s, _ := newTestSession(t, time.Second)
	if got := s.Layout().Tier; got != breakpoint.Desktop {
		t.Errorf("tier %v, want desktop", got)
	}
}
