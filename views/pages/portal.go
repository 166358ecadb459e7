// Package pages renders full HTML documents.
package pages

import (
	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"portal/internal/viewmodel"
	"portal/views/components"
)

// PortalPage renders the intranet home page. The layout and carousel
// fragments are replaced in place when the stream pushes updates.
func PortalPage(data viewmodel.PortalPage) templ.Component {
	return components.Component(h.Doctype(
		h.HTML(h.Lang("en"),
			h.Head(
				h.Meta(h.Charset("utf-8")),
				h.Meta(h.Name("viewport"), h.Content("width=device-width, initial-scale=1")),
				h.TitleEl(g.Text(data.Title)),
				h.Link(h.Rel("stylesheet"), h.Href("/static/portal.css")),
				h.Script(h.Src("https://unpkg.com/htmx.org@1.9.12"), h.Defer()),
				h.Script(h.Src("/static/portal.js"), h.Defer()),
			),
			h.Body(
				g.Attr("data-stream", "/stream"),
				h.Header(h.Class("portal-header"), h.H1(g.Text(data.Title))),
				h.Main(
					g.Map(data.Carousels, components.CarouselNode),
					components.LayoutNode(data.Layout),
				),
			),
		),
	))
}
