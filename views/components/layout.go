package components

import (
	"strconv"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"portal/internal/viewmodel"
)

// LayoutID is the DOM id of the layout fragment.
const LayoutID = "layout"

// Layout renders the breakpoint-dependent shell around the page content:
// data attributes the stylesheet keys on and the quick-links grid, which
// offers hover previews only on hover-capable tiers.
func Layout(data viewmodel.LayoutView) templ.Component {
	return Component(LayoutNode(data))
}

// LayoutNode is the node tree behind Layout.
func LayoutNode(data viewmodel.LayoutView) g.Node {
	return h.Div(
		h.ID(LayoutID),
		h.Class("layout layout--"+data.Tier),
		g.Attr("data-tier", data.Tier),
		g.Attr("data-interaction", data.Interaction),
		g.Attr("style", "--columns: "+strconv.Itoa(data.Columns)),
		h.Ul(h.Class("quick-links"),
			g.Map(quickLinks, func(l quickLink) g.Node {
				return h.Li(h.Class("quick-links__item"),
					h.A(h.Href(l.href), g.Text(l.label)),
					g.If(data.Interaction == "hover",
						h.Span(h.Class("quick-links__preview"), g.Text(l.hint)),
					),
				)
			}),
		),
	)
}

type quickLink struct {
	href  string
	label string
	hint  string
}

var quickLinks = []quickLink{
	{"/news", "News", "Company announcements and updates"},
	{"/events", "Events", "Upcoming meetings and gatherings"},
	{"/people", "People", "Find colleagues and contacts"},
}
