package carousel

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func slides(n int) []Slide {
	out := make([]Slide, n)
	for i := range out {
		out[i] = Slide{Image: string(rune('A' + i))}
	}
	return out
}

func mustNew(t *testing.T, n int, interval time.Duration) *Carousel {
	t.Helper()
	c, err := New(slides(n), interval)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func tickN(c *Carousel, n int, d time.Duration) {
	for i := 0; i < n; i++ {
		c.Tick(d)
	}
}

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestNew_Initial(t *testing.T) {
	c := mustNew(t, 3, 3*time.Second)
	want := State{Index: 0, Len: 3, Playing: true, Progress: 0}
	if diff := cmp.Diff(want, c.State()); diff != "" {
		t.Errorf("initial state mismatch (-want +got):\n%s", diff)
	}
	if c.Interval() != 3*time.Second {
		t.Errorf("Interval %v, want 3s", c.Interval())
	}
}

func TestNew_DefaultInterval(t *testing.T) {
	c := mustNew(t, 1, 0)
	if c.Interval() != DefaultInterval {
		t.Errorf("Interval %v, want %v", c.Interval(), DefaultInterval)
	}
}

func TestNew_EmptySlidesRejected(t *testing.T) {
	c, err := New(nil, 5*time.Second)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("err %v, want ErrInvalidArgument", err)
	}
	if c != nil {
		t.Error("carousel should be nil on error")
	}
	if _, err := New([]Slide{}, 5*time.Second); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("empty slice: err %v, want ErrInvalidArgument", err)
	}
}

func TestNew_CopiesSlides(t *testing.T) {
	in := slides(2)
	c, _ := New(in, time.Second)
	in[0].Image = "changed"
	if c.Slides()[0].Image != "A" {
		t.Error("carousel should not observe caller mutations")
	}
}

func TestNextPrevious_Wraparound(t *testing.T) {
	c := mustNew(t, 4, time.Second)
	if err := c.GoTo(3); err != nil {
		t.Fatalf("GoTo: %v", err)
	}
	c.Next()
	if got := c.State().Index; got != 0 {
		t.Errorf("Next from 3: index %d, want 0", got)
	}
	c.Previous()
	if got := c.State().Index; got != 3 {
		t.Errorf("Previous from 0: index %d, want 3", got)
	}
	c.Previous()
	if got := c.State().Index; got != 2 {
		t.Errorf("Previous from 3: index %d, want 2", got)
	}
}

func TestGoTo_ResetsProgress(t *testing.T) {
	for _, playing := range []bool{true, false} {
		c := mustNew(t, 4, time.Second)
		tickN(c, 73, 10*time.Millisecond)
		if got := c.State().Progress; math.Abs(got-73) > 1e-9 {
			t.Fatalf("progress %v, want 73", got)
		}
		if !playing {
			c.TogglePlay()
		}
		if err := c.GoTo(2); err != nil {
			t.Fatalf("GoTo: %v", err)
		}
		want := State{Index: 2, Len: 4, Playing: playing, Progress: 0}
		if diff := cmp.Diff(want, c.State()); diff != "" {
			t.Errorf("playing=%v (-want +got):\n%s", playing, diff)
		}
	}
}

func TestNextPrevious_ResetProgress(t *testing.T) {
	c := mustNew(t, 3, time.Second)
	tickN(c, 5, 50*time.Millisecond)
	c.Next()
	if got := c.State().Progress; got != 0 {
		t.Errorf("after Next progress %v, want 0", got)
	}
	tickN(c, 5, 50*time.Millisecond)
	c.Previous()
	if got := c.State().Progress; got != 0 {
		t.Errorf("after Previous progress %v, want 0", got)
	}
}

func TestGoTo_OutOfRange(t *testing.T) {
	c := mustNew(t, 4, time.Second)
	tickN(c, 4, 50*time.Millisecond)
	for _, idx := range []int{-1, 4, 100} {
		if err := c.GoTo(idx); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("GoTo(%d) err %v, want ErrInvalidArgument", idx, err)
		}
	}
	st := c.State()
	if st.Index != 0 || st.Progress == 0 {
		t.Errorf("rejected GoTo must not touch state, got %+v", st)
	}
}

func TestTick_AutoAdvanceAtFullProgress(t *testing.T) {
	c := mustNew(t, 4, time.Second)
	for i := 1; i <= 20; i++ {
		advanced := c.Tick(DefaultTickPeriod)
		st := c.State()
		if st.Progress >= 100 {
			t.Fatalf("tick %d: progress %v reached 100", i, st.Progress)
		}
		if i < 20 && (advanced || st.Index != 0) {
			t.Fatalf("tick %d: advanced early to %d", i, st.Index)
		}
	}
	st := c.State()
	if st.Index != 1 {
		t.Errorf("index %d, want 1", st.Index)
	}
	if st.Progress != 0 {
		t.Errorf("progress %v, want 0", st.Progress)
	}
}

func TestTogglePlay_FreezesProgress(t *testing.T) {
	c := mustNew(t, 2, time.Second)
	tickN(c, 8, DefaultTickPeriod)
	if got := c.State().Progress; math.Abs(got-40) > 1e-9 {
		t.Fatalf("progress %v, want 40", got)
	}
	if playing := c.TogglePlay(); playing {
		t.Fatal("TogglePlay should pause")
	}
	tickN(c, 50, DefaultTickPeriod)
	st := c.State()
	if math.Abs(st.Progress-40) > 1e-9 || st.Index != 0 {
		t.Errorf("paused state drifted: %+v", st)
	}
	if playing := c.TogglePlay(); !playing {
		t.Fatal("TogglePlay should resume")
	}
	c.Tick(DefaultTickPeriod)
	if got := c.State().Progress; math.Abs(got-45) > 1e-9 {
		t.Errorf("progress %v, want 45 after resume", got)
	}
}

func TestTick_IgnoresNonPositiveDelta(t *testing.T) {
	c := mustNew(t, 2, time.Second)
	c.Tick(0)
	c.Tick(-time.Second)
	if got := c.State().Progress; got != 0 {
		t.Errorf("progress %v, want 0", got)
	}
}

func TestIndicators_OneActive(t *testing.T) {
	c := mustNew(t, 3, time.Second)
	_ = c.GoTo(1)
	tickN(c, 4, DefaultTickPeriod)
	want := []Indicator{
		{Index: 0},
		{Index: 1, Active: true, Fill: 20},
		{Index: 2},
	}
	if diff := cmp.Diff(want, c.Indicators(), approx); diff != "" {
		t.Errorf("indicators (-want +got):\n%s", diff)
	}
}

func TestScenario_ThreeSlidesFullCycle(t *testing.T) {
	c := mustNew(t, 3, 3*time.Second)
	changes := 0
	for i := 1; i <= 60; i++ {
		if c.Tick(DefaultTickPeriod) {
			changes++
		}
		st := c.State()
		if i < 60 {
			want := float64(i) * 50 / 3000 * 100
			if math.Abs(st.Progress-want) > 1e-9 {
				t.Fatalf("tick %d: progress %v, want %v", i, st.Progress, want)
			}
			if st.Index != 0 {
				t.Fatalf("tick %d: index %d, want 0", i, st.Index)
			}
		}
	}
	st := c.State()
	if changes != 1 {
		t.Errorf("slide changed %d times, want 1", changes)
	}
	if st.Index != 1 || st.Progress != 0 {
		t.Errorf("after 60 ticks: %+v, want index 1 progress 0", st)
	}
}
