package realtime

import "time"

// DefaultMaxCatchUp bounds how many missed periods Due reports at once.
const DefaultMaxCatchUp = 20

// Cadence schedules fixed-period ticks on top of a loop that may wake late.
// It does not hold any view state; the owner reacts to Due(now) by applying
// that many ticks to its own state. Ticks are anchored to Started so a late
// wake-up does not shift later ones.
type Cadence struct {
	Period     time.Duration
	MaxCatchUp int
	Started    time.Time
	Ticks      int64
}

// NewCadence returns a cadence with the given period, not yet started.
func NewCadence(period time.Duration) Cadence {
	return Cadence{Period: period, MaxCatchUp: DefaultMaxCatchUp}
}

// Start anchors the schedule at now and clears the tick count.
func (c *Cadence) Start(now time.Time) {
	c.Started = now
	c.Ticks = 0
}

// Active reports whether Start has been called.
func (c *Cadence) Active() bool {
	return !c.Started.IsZero() && c.Period > 0
}

// NextWake returns when the next tick is due. If not active, returns (zero, false).
func (c *Cadence) NextWake(now time.Time) (time.Time, bool) {
	if !c.Active() {
		return time.Time{}, false
	}
	next := c.Started.Add(time.Duration(c.Ticks+1) * c.Period)
	if next.Before(now) {
		return now, true
	}
	return next, true
}

// Due returns how many ticks have come due since the last call and counts
// them as consumed. When more than MaxCatchUp are due (the process was
// suspended, say) the surplus is skipped rather than replayed.
func (c *Cadence) Due(now time.Time) int {
	if !c.Active() || now.Before(c.Started) {
		return 0
	}
	total := int64(now.Sub(c.Started) / c.Period)
	due := total - c.Ticks
	if due <= 0 {
		return 0
	}
	c.Ticks = total
	if c.MaxCatchUp > 0 && due > int64(c.MaxCatchUp) {
		return c.MaxCatchUp
	}
	return int(due)
}
