package handlers

import (
	"portal/internal/portal"
	"portal/internal/viewmodel"
	"portal/pkg/carousel"
)

func buildLayoutView(sess *portal.Session) viewmodel.LayoutView {
	st := sess.Observer.Read()
	layout := portal.LayoutFor(st.Tier)
	return viewmodel.LayoutView{
		Tier:        st.Tier.String(),
		Width:       st.Width,
		Interaction: string(layout.Interaction),
		Columns:     layout.Columns,
	}
}

func buildCarouselViews(sess *portal.Session) []viewmodel.CarouselView {
	layout := sess.Layout()
	names := sess.CarouselNames()
	out := make([]viewmodel.CarouselView, 0, len(names))
	for _, name := range names {
		c, ok := sess.Carousel(name)
		if !ok {
			continue
		}
		out = append(out, buildCarouselView(name, c, layout))
	}
	return out
}

func buildCarouselView(name string, c *carousel.Carousel, layout portal.Layout) viewmodel.CarouselView {
	st := c.State()
	slides := c.Slides()
	views := make([]viewmodel.SlideView, 0, len(slides))
	for i, s := range slides {
		views = append(views, viewmodel.SlideView{
			Index:   i,
			Image:   s.Image,
			Alt:     s.Alt,
			Caption: s.Caption,
			Href:    s.Href,
			Active:  i == st.Index,
		})
	}
	indicators := carousel.IndicatorsFor(st)
	inds := make([]viewmodel.IndicatorView, 0, len(indicators))
	for _, ind := range indicators {
		inds = append(inds, viewmodel.IndicatorView{
			Index:  ind.Index,
			Active: ind.Active,
			Fill:   ind.Fill,
		})
	}
	return viewmodel.CarouselView{
		Name:        name,
		Slides:      views,
		Indicators:  inds,
		Current:     st.Index,
		Playing:     st.Playing,
		AspectRatio: layout.AspectRatio,
		ShowArrows:  layout.ShowArrows,
		Interaction: string(layout.Interaction),
	}
}
