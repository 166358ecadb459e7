package viewmodel

// SlideView is one slide of a carousel fragment.
type SlideView struct {
	Index   int
	Image   string
	Alt     string
	Caption string
	Href    string
	Active  bool
}

// IndicatorView is one pagination indicator. Fill is a percentage and is only
// non-zero on the active indicator.
type IndicatorView struct {
	Index  int
	Active bool
	Fill   float64
}

// CarouselView holds data for the carousel fragment.
type CarouselView struct {
	Name        string
	Slides      []SlideView
	Indicators  []IndicatorView
	Current     int
	Playing     bool
	AspectRatio string
	ShowArrows  bool
	Interaction string
}

// LayoutView holds data for the breakpoint-dependent page shell.
type LayoutView struct {
	Tier        string
	Width       int
	Interaction string
	Columns     int
}

// PortalPage holds data for the home page template.
type PortalPage struct {
	Title     string
	SessionID string
	Layout    LayoutView
	Carousels []CarouselView
}
