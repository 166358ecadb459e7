package breakpoint

// Width thresholds in device-independent pixels.
const (
	// MobileMaxWidth is the widest viewport still classified as Mobile.
	MobileMaxWidth = 767

	// TabletMaxWidth is the widest viewport still classified as Tablet.
	TabletMaxWidth = 1023

	// DefaultWidth is reported when no viewport can be measured.
	DefaultWidth = 1024
)

// Tier is a coarse device class derived from viewport width.
type Tier int

const (
	Mobile Tier = iota
	Tablet
	Desktop
)

func (t Tier) String() string {
	switch t {
	case Mobile:
		return "mobile"
	case Tablet:
		return "tablet"
	case Desktop:
		return "desktop"
	default:
		return "unknown"
	}
}

// Classify maps a width to exactly one tier. Boundaries are inclusive on the
// upper end of Mobile and Tablet.
func Classify(width int) Tier {
	switch {
	case width <= MobileMaxWidth:
		return Mobile
	case width <= TabletMaxWidth:
		return Tablet
	default:
		return Desktop
	}
}

// State is the last published viewport measurement.
type State struct {
	Width int
	Tier  Tier
}

// StateFor builds the state for a width.
func StateFor(width int) State {
	return State{Width: width, Tier: Classify(width)}
}
