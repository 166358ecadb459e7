package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"portal/internal/portal"
	"portal/internal/viewmodel"
	"portal/pkg/carousel"
	"portal/views/components"
	"portal/views/pages"
)

const sessionCookie = "portal_session"

// KeepAliveInterval is how often the stream writes a comment to hold the
// connection open.
var KeepAliveInterval = 25 * time.Second

type PortalHandler struct {
	store *portal.Store
	log   *zap.Logger
	title string
}

func NewPortalHandler(store *portal.Store, log *zap.Logger) *PortalHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PortalHandler{store: store, log: log, title: "Intranet"}
}

func (h *PortalHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Post("/viewport", h.reportViewport)
	r.Get("/layout", h.layoutFragment)
	r.Delete("/session", h.closeSession)
	r.Route("/carousel/{name}", func(r chi.Router) {
		r.Get("/", h.carouselFragment)
		r.Post("/next", h.next)
		r.Post("/prev", h.previous)
		r.Post("/toggle", h.toggle)
		r.Post("/goto/{index}", h.goTo)
	})
}

// RegisterStreamRoutes mounts the long-lived event stream, kept apart so it
// can sit outside request timeouts.
func (h *PortalHandler) RegisterStreamRoutes(r chi.Router) {
	r.Get("/stream", h.stream)
}

func (h *PortalHandler) home(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(r)
	if !ok {
		var err error
		sess, err = h.store.CreateSession(parseWidth(r.URL.Query().Get("w")))
		if err != nil {
			h.log.Error("create session", zap.Error(err))
			http.Error(w, "portal unavailable", http.StatusInternalServerError)
			return
		}
		setSessionCookie(w, sess.ID)
	}
	h.store.EnsureAutoplay(sess.ID)

	data := viewmodel.PortalPage{
		Title:     h.title,
		SessionID: sess.ID,
		Layout:    buildLayoutView(sess),
		Carousels: buildCarouselViews(sess),
	}
	render(w, r, pages.PortalPage(data))
}

func (h *PortalHandler) reportViewport(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(r)
	if !ok {
		http.Error(w, "no session", http.StatusNotFound)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	width, err := strconv.Atoi(strings.TrimSpace(r.FormValue("width")))
	if err != nil || width < 0 {
		http.Error(w, "width must be a non-negative integer", http.StatusBadRequest)
		return
	}
	sess.Viewport.Report(width)
	w.WriteHeader(http.StatusNoContent)
}

func (h *PortalHandler) layoutFragment(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(r)
	if !ok {
		http.Error(w, "no session", http.StatusNotFound)
		return
	}
	render(w, r, components.Layout(buildLayoutView(sess)))
}

func (h *PortalHandler) carouselFragment(w http.ResponseWriter, r *http.Request) {
	sess, c, ok := h.carousel(w, r)
	if !ok {
		return
	}
	render(w, r, components.Carousel(buildCarouselView(chi.URLParam(r, "name"), c, sess.Layout())))
}

func (h *PortalHandler) next(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(c *carousel.Carousel) error {
		c.Next()
		return nil
	})
}

func (h *PortalHandler) previous(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(c *carousel.Carousel) error {
		c.Previous()
		return nil
	})
}

func (h *PortalHandler) toggle(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(c *carousel.Carousel) error {
		c.TogglePlay()
		return nil
	})
}

func (h *PortalHandler) goTo(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid slide index", http.StatusBadRequest)
		return
	}
	h.act(w, r, func(c *carousel.Carousel) error {
		return c.GoTo(index)
	})
}

// act applies a user action to the named carousel and publishes the change.
func (h *PortalHandler) act(w http.ResponseWriter, r *http.Request, fn func(*carousel.Carousel) error) {
	sess, c, ok := h.carousel(w, r)
	if !ok {
		return
	}
	if err := fn(c); err != nil {
		if errors.Is(err, carousel.ErrInvalidArgument) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.log.Error("carousel action", zap.String("session", sess.ID), zap.Error(err))
		http.Error(w, "action failed", http.StatusInternalServerError)
		return
	}
	h.store.Publish(sess.ID, portal.EventCarousel)
	if r.Header.Get("Hx-Request") == "true" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *PortalHandler) closeSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(r)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.store.Close(sess.ID)
	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *PortalHandler) stream(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	sub, ok := h.store.Subscribe(sess.ID)
	if !ok {
		http.NotFound(w, r)
		return
	}
	defer sub.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	sendCarousels := func() {
		for _, view := range buildCarouselViews(sess) {
			writeSSE(w, string(portal.EventCarousel), renderToString(r, components.Carousel(view)))
		}
	}
	sendLayout := func() {
		writeSSE(w, string(portal.EventLayout), renderToString(r, components.Layout(buildLayoutView(sess))))
	}

	sendLayout()
	sendCarousels()
	flusher.Flush()

	keepAlive := time.NewTicker(KeepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, open := <-sub.C:
			if !open {
				return
			}
			switch event {
			case portal.EventCarousel:
				sendCarousels()
			case portal.EventLayout:
				// Aspect ratio and arrow visibility follow the tier too.
				sendLayout()
				sendCarousels()
			}
			flusher.Flush()
		case <-keepAlive.C:
			sess.Touch(h.store.Clock().Now().UTC())
			_, _ = w.Write([]byte(": keepalive\n\n"))
			flusher.Flush()
		}
	}
}

func (h *PortalHandler) session(r *http.Request) (*portal.Session, bool) {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	sess, ok := h.store.GetSession(cookie.Value)
	if ok {
		sess.Touch(h.store.Clock().Now().UTC())
	}
	return sess, ok
}

func (h *PortalHandler) carousel(w http.ResponseWriter, r *http.Request) (*portal.Session, *carousel.Carousel, bool) {
	sess, ok := h.session(r)
	if !ok {
		http.Error(w, "no session", http.StatusNotFound)
		return nil, nil, false
	}
	c, ok := sess.Carousel(chi.URLParam(r, "name"))
	if !ok {
		http.NotFound(w, r)
		return nil, nil, false
	}
	return sess, c, true
}

func setSessionCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func parseWidth(value string) int {
	if value == "" {
		return 0
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return 0
	}
	return parsed
}
