package components

import (
	"fmt"
	"strconv"

	"github.com/a-h/templ"
	g "maragu.dev/gomponents"
	h "maragu.dev/gomponents/html"

	"portal/internal/viewmodel"
)

// CarouselID is the DOM id of a carousel fragment.
func CarouselID(name string) string {
	return "carousel-" + name
}

// Carousel renders the banner carousel. Exactly one slide is active; the
// others are inert and hidden from assistive technology.
func Carousel(data viewmodel.CarouselView) templ.Component {
	return Component(CarouselNode(data))
}

// CarouselNode is the node tree behind Carousel.
func CarouselNode(data viewmodel.CarouselView) g.Node {
	base := "/carousel/" + data.Name
	return h.Section(
		h.ID(CarouselID(data.Name)),
		h.Class("carousel carousel--"+data.Interaction),
		h.Role("region"),
		h.Aria("roledescription", "carousel"),
		h.Aria("label", "Announcements"),
		g.Attr("data-playing", strconv.FormatBool(data.Playing)),
		g.Attr("style", "aspect-ratio: "+data.AspectRatio),

		h.Div(h.Class("carousel__track"), h.Aria("live", liveMode(data.Playing)),
			g.Map(data.Slides, slide),
		),

		g.If(data.ShowArrows,
			h.Div(h.Class("carousel__arrows"),
				controlButton(base+"/prev", "carousel__prev", "Previous slide", "‹"),
				controlButton(base+"/next", "carousel__next", "Next slide", "›"),
			),
		),

		h.Div(h.Class("carousel__footer"),
			h.Nav(h.Class("carousel__pagination"), h.Aria("label", "Choose slide"),
				g.Map(data.Indicators, func(ind viewmodel.IndicatorView) g.Node {
					return indicator(base, ind)
				}),
			),
			controlButton(base+"/toggle", "carousel__toggle", toggleLabel(data.Playing), toggleGlyph(data.Playing)),
		),
	)
}

func slide(s viewmodel.SlideView) g.Node {
	return h.Div(
		h.Class(slideClass(s.Active)),
		h.Role("group"),
		h.Aria("roledescription", "slide"),
		g.If(s.Active, h.Aria("current", "true")),
		g.If(!s.Active, h.Aria("hidden", "true")),
		g.If(!s.Active, g.Attr("inert")),
		h.A(h.Href(s.Href), g.If(!s.Active, h.TabIndex("-1")),
			h.Img(h.Src(s.Image), h.Alt(s.Alt), g.Attr("loading", loading(s.Index))),
		),
		g.If(s.Caption != "", h.P(h.Class("carousel__caption"), g.Text(s.Caption))),
	)
}

func indicator(base string, ind viewmodel.IndicatorView) g.Node {
	label := fmt.Sprintf("Go to slide %d", ind.Index+1)
	if !ind.Active {
		return h.Button(
			h.Type("button"),
			h.Class("carousel__dot"),
			h.Aria("label", label),
			g.Attr("hx-post", fmt.Sprintf("%s/goto/%d", base, ind.Index)),
			g.Attr("hx-swap", "none"),
		)
	}
	return h.Button(
		h.Type("button"),
		h.Class("carousel__dot carousel__dot--active"),
		h.Aria("label", label),
		h.Aria("current", "true"),
		g.Attr("hx-post", fmt.Sprintf("%s/goto/%d", base, ind.Index)),
		g.Attr("hx-swap", "none"),
		h.Span(h.Class("carousel__fill"), g.Attr("style", fmt.Sprintf("width: %.2f%%", ind.Fill))),
	)
}

func controlButton(action, class, label, glyph string) g.Node {
	return h.Button(
		h.Type("button"),
		h.Class(class),
		h.Aria("label", label),
		g.Attr("hx-post", action),
		g.Attr("hx-swap", "none"),
		g.Text(glyph),
	)
}

func slideClass(active bool) string {
	if active {
		return "carousel__slide carousel__slide--active"
	}
	return "carousel__slide"
}

func liveMode(playing bool) string {
	if playing {
		return "off"
	}
	return "polite"
}

func loading(index int) string {
	if index == 0 {
		return "eager"
	}
	return "lazy"
}

func toggleLabel(playing bool) string {
	if playing {
		return "Pause slideshow"
	}
	return "Play slideshow"
}

func toggleGlyph(playing bool) string {
	if playing {
		return "❚❚"
	}
	return "▶"
}
