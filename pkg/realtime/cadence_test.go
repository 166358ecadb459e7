package realtime

import (
	"testing"
	"time"
)

func TestCadence_NextWake_NotStarted(t *testing.T) {
	c := NewCadence(50 * time.Millisecond)
	next, ok := c.NextWake(time.Now().UTC())
	if ok {
		t.Error("NextWake should return false when not started")
	}
	if !next.IsZero() {
		t.Error("next should be zero")
	}
	if c.Due(time.Now().UTC()) != 0 {
		t.Error("Due should be 0 when not started")
	}
}

func TestCadence_NextWake_Active(t *testing.T) {
	now := time.Now().UTC()
	c := NewCadence(50 * time.Millisecond)
	c.Start(now)
	next, ok := c.NextWake(now)
	if !ok {
		t.Fatal("NextWake should return true when active")
	}
	if want := now.Add(50 * time.Millisecond); !next.Equal(want) {
		t.Errorf("next %v, want %v", next, want)
	}
}

func TestCadence_NextWake_Overdue(t *testing.T) {
	now := time.Now().UTC()
	c := NewCadence(50 * time.Millisecond)
	c.Start(now)
	late := now.Add(time.Second)
	next, _ := c.NextWake(late)
	if !next.Equal(late) {
		t.Errorf("overdue next %v, want now %v", next, late)
	}
}

func TestCadence_Due(t *testing.T) {
	now := time.Now().UTC()
	c := NewCadence(50 * time.Millisecond)
	c.Start(now)

	if got := c.Due(now.Add(49 * time.Millisecond)); got != 0 {
		t.Errorf("Due before first period %d, want 0", got)
	}
	if got := c.Due(now.Add(50 * time.Millisecond)); got != 1 {
		t.Errorf("Due at first period %d, want 1", got)
	}
	if got := c.Due(now.Add(60 * time.Millisecond)); got != 0 {
		t.Errorf("Due again within period %d, want 0", got)
	}
	// Woke late: two periods accumulated, schedule stays anchored.
	if got := c.Due(now.Add(160 * time.Millisecond)); got != 2 {
		t.Errorf("Due after late wake %d, want 2", got)
	}
	next, _ := c.NextWake(now.Add(160 * time.Millisecond))
	if want := now.Add(200 * time.Millisecond); !next.Equal(want) {
		t.Errorf("next %v, want %v", next, want)
	}
}

func TestCadence_Due_CapsCatchUp(t *testing.T) {
	now := time.Now().UTC()
	c := NewCadence(50 * time.Millisecond)
	c.Start(now)
	if got := c.Due(now.Add(time.Hour)); got != DefaultMaxCatchUp {
		t.Errorf("Due after long stall %d, want %d", got, DefaultMaxCatchUp)
	}
	if got := c.Due(now.Add(time.Hour)); got != 0 {
		t.Errorf("skipped ticks must not be replayed, got %d", got)
	}
}

func TestCadence_Start_Resets(t *testing.T) {
	now := time.Now().UTC()
	c := NewCadence(time.Second)
	c.Start(now)
	c.Due(now.Add(3 * time.Second))
	c.Start(now.Add(5 * time.Second))
	if c.Ticks != 0 {
		t.Errorf("Ticks %d, want 0", c.Ticks)
	}
}
