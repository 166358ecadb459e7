package carousel

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultInterval is how long a slide stays active before auto-advancing.
	DefaultInterval = 5 * time.Second

	// DefaultTickPeriod is the period drivers should call Tick with.
	DefaultTickPeriod = 50 * time.Millisecond
)

// ErrInvalidArgument reports caller misuse: an empty slide list or an index
// outside the slide range.
var ErrInvalidArgument = errors.New("carousel: invalid argument")

// Slide is one banner entry.
type Slide struct {
	Image   string `yaml:"image"`
	Caption string `yaml:"caption"`
	Alt     string `yaml:"alt"`
	Href    string `yaml:"href"`
}

// State is a point-in-time view of a carousel.
type State struct {
	Index    int
	Len      int
	Playing  bool
	Progress float64
}

// Indicator is one pagination dot. Only the active indicator has a fill.
type Indicator struct {
	Index  int
	Active bool
	Fill   float64
}

// Carousel is the autoplay state machine. It owns no timer: a driver calls
// Tick periodically and user actions call Next/Previous/GoTo/TogglePlay.
// Elapsed time is tracked as a duration, progress is derived from it.
type Carousel struct {
	mu       sync.Mutex
	slides   []Slide
	interval time.Duration
	index    int
	playing  bool
	elapsed  time.Duration
}

// New starts a carousel on the first slide, playing, with zero progress.
// A non-positive interval selects DefaultInterval.
func New(slides []Slide, interval time.Duration) (*Carousel, error) {
	if len(slides) == 0 {
		return nil, fmt.Errorf("%w: carousel needs at least one slide", ErrInvalidArgument)
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	own := make([]Slide, len(slides))
	copy(own, slides)
	return &Carousel{
		slides:   own,
		interval: interval,
		playing:  true,
	}, nil
}

// Slides returns a copy of the slide list.
func (c *Carousel) Slides() []Slide {
	out := make([]Slide, len(c.slides))
	copy(out, c.slides)
	return out
}

// Len returns the number of slides.
func (c *Carousel) Len() int {
	return len(c.slides)
}

// Interval returns the per-slide autoplay interval.
func (c *Carousel) Interval() time.Duration {
	return c.interval
}

// GoTo jumps to index and resets progress. Play state is unchanged.
func (c *Carousel) GoTo(index int) error {
	if index < 0 || index >= len(c.slides) {
		return fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidArgument, index, len(c.slides))
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.moveLocked(index)
	return nil
}

// Next moves forward one slide, wrapping from the last to the first.
func (c *Carousel) Next() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.moveLocked((c.index + 1) % len(c.slides))
}

// Previous moves back one slide, wrapping from the first to the last.
func (c *Carousel) Previous() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.moveLocked((c.index - 1 + len(c.slides)) % len(c.slides))
}

// TogglePlay flips between playing and paused. Progress is kept as is so the
// indicator does not jump; ticks resume accumulating from it.
func (c *Carousel) TogglePlay() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = !c.playing
	return c.playing
}

// Tick advances the timer by delta while playing. When the slide's interval
// is reached it moves to the next slide and resets progress in the same step,
// so progress is never observed at or above 100. It reports whether the slide
// changed.
func (c *Carousel) Tick(delta time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.playing || delta <= 0 {
		return false
	}
	c.elapsed += delta
	if c.elapsed < c.interval {
		return false
	}
	c.moveLocked((c.index + 1) % len(c.slides))
	return true
}

// State returns a snapshot.
func (c *Carousel) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Index:    c.index,
		Len:      len(c.slides),
		Playing:  c.playing,
		Progress: c.progressLocked(),
	}
}

// Indicators returns one pagination indicator per slide.
func (c *Carousel) Indicators() []Indicator {
	return IndicatorsFor(c.State())
}

// IndicatorsFor derives the pagination indicators from a snapshot.
func IndicatorsFor(st State) []Indicator {
	out := make([]Indicator, st.Len)
	for i := range out {
		out[i].Index = i
		if i == st.Index {
			out[i].Active = true
			out[i].Fill = st.Progress
		}
	}
	return out
}

func (c *Carousel) moveLocked(index int) {
	c.index = index
	c.elapsed = 0
}

func (c *Carousel) progressLocked() float64 {
	return float64(c.elapsed) / float64(c.interval) * 100
}
