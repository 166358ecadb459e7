package portal

import "portal/pkg/breakpoint"

// Interaction is the affordance style a tier gets.
type Interaction string

const (
	InteractionHover Interaction = "hover"
	InteractionTouch Interaction = "touch"
)

// Layout holds the breakpoint-driven decisions the views branch on.
type Layout struct {
	Tier        breakpoint.Tier
	AspectRatio string
	Interaction Interaction
	ShowArrows  bool
	Columns     int
}

// LayoutFor returns the layout for a tier. Mobile drops the arrow controls in
// favour of the pagination dots and uses a taller banner crop.
func LayoutFor(tier breakpoint.Tier) Layout {
	switch tier {
	case breakpoint.Mobile:
		return Layout{Tier: tier, AspectRatio: "4 / 3", Interaction: InteractionTouch, ShowArrows: false, Columns: 1}
	case breakpoint.Tablet:
		return Layout{Tier: tier, AspectRatio: "16 / 9", Interaction: InteractionTouch, ShowArrows: true, Columns: 2}
	default:
		return Layout{Tier: breakpoint.Desktop, AspectRatio: "21 / 9", Interaction: InteractionHover, ShowArrows: true, Columns: 3}
	}
}
