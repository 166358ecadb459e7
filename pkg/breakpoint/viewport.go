package breakpoint

import "sync"

// Viewport is anything that can report its width and signal resizes.
type Viewport interface {
	Width() int
	OnResize(fn func()) (remove func())
}

// ReportedViewport is a Viewport whose width is pushed from outside, e.g. a
// browser tab posting its innerWidth or a terminal reporting its size. Every
// Report is a resize signal, even if the width did not change.
type ReportedViewport struct {
	mu        sync.Mutex
	width     int
	nextID    uint64
	listeners map[uint64]func()
}

// NewReportedViewport creates a viewport starting at width.
func NewReportedViewport(width int) *ReportedViewport {
	if width < 0 {
		width = 0
	}
	return &ReportedViewport{
		width:     width,
		listeners: make(map[uint64]func()),
	}
}

// Width returns the last reported width.
func (v *ReportedViewport) Width() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.width
}

// Report records a new width and fires the resize listeners outside the lock.
func (v *ReportedViewport) Report(width int) {
	if width < 0 {
		width = 0
	}
	v.mu.Lock()
	v.width = width
	fns := make([]func(), 0, len(v.listeners))
	for _, fn := range v.listeners {
		fns = append(fns, fn)
	}
	v.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// OnResize registers fn for resize signals.
func (v *ReportedViewport) OnResize(fn func()) func() {
	v.mu.Lock()
	id := v.nextID
	v.nextID++
	v.listeners[id] = fn
	v.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			delete(v.listeners, id)
			v.mu.Unlock()
		})
	}
}

// Listeners returns the number of registered resize listeners.
func (v *ReportedViewport) Listeners() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.listeners)
}
