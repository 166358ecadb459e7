package breakpoint

import (
	"sync"
	"time"

	"go.uber.org/zap"
	"k8s.io/utils/clock"
)

// DefaultDebounce is how long resize signals must stay quiet before the
// observer remeasures.
const DefaultDebounce = 150 * time.Millisecond

type subscriber struct {
	fn         func(State)
	widthLevel bool
}

// Observer owns the current breakpoint State and notifies subscribers when it
// changes. Resize signals are coalesced: only after the debounce window passes
// without a new signal is the viewport measured again.
type Observer struct {
	viewport     Viewport
	clock        clock.WithDelayedExecution
	debounce     time.Duration
	defaultWidth int
	log          *zap.Logger

	// deliverMu serializes settle with Dispose so no notification is delivered
	// after Dispose returns.
	deliverMu sync.Mutex

	mu       sync.Mutex
	state    State
	pending  clock.Timer
	gen      uint64
	nextID   uint64
	subs     map[uint64]subscriber
	detach   func()
	disposed bool
}

// Option configures an Observer.
type Option func(*Observer)

// WithDebounce overrides the resize debounce window.
func WithDebounce(d time.Duration) Option {
	return func(o *Observer) {
		if d > 0 {
			o.debounce = d
		}
	}
}

// WithDefaultWidth sets the width used when no viewport is available.
func WithDefaultWidth(width int) Option {
	return func(o *Observer) {
		if width >= 0 {
			o.defaultWidth = width
		}
	}
}

// WithClock injects the clock used for the debounce timer.
func WithClock(c clock.WithDelayedExecution) Option {
	return func(o *Observer) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithLogger sets the logger used for subscriber failures and state changes.
func WithLogger(log *zap.Logger) Option {
	return func(o *Observer) {
		if log != nil {
			o.log = log
		}
	}
}

// NewObserver measures vp (or falls back to the default width when vp is nil)
// and starts listening for resize signals.
func NewObserver(vp Viewport, opts ...Option) *Observer {
	o := &Observer{
		viewport:     vp,
		clock:        clock.RealClock{},
		debounce:     DefaultDebounce,
		defaultWidth: DefaultWidth,
		log:          zap.NewNop(),
		subs:         make(map[uint64]subscriber),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.state = StateFor(o.measure())
	if vp != nil {
		o.detach = vp.OnResize(o.onResize)
	}
	return o
}

// Read returns the most recently published state.
func (o *Observer) Read() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Subscribe registers fn for tier changes. Width changes inside the same tier
// are not delivered; use SubscribeWidth for those.
func (o *Observer) Subscribe(fn func(State)) (unsubscribe func()) {
	return o.subscribe(fn, false)
}

// SubscribeWidth registers fn for every published change, width or tier.
func (o *Observer) SubscribeWidth(fn func(State)) (unsubscribe func()) {
	return o.subscribe(fn, true)
}

func (o *Observer) subscribe(fn func(State), widthLevel bool) func() {
	o.mu.Lock()
	if o.disposed {
		o.mu.Unlock()
		return func() {}
	}
	id := o.nextID
	o.nextID++
	o.subs[id] = subscriber{fn: fn, widthLevel: widthLevel}
	o.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			o.mu.Lock()
			delete(o.subs, id)
			o.mu.Unlock()
		})
	}
}

// Subscribers returns the number of registered callbacks.
func (o *Observer) Subscribers() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.subs)
}

// Dispose cancels any pending remeasure, detaches from the viewport and drops
// all subscribers. It must not be called from inside a subscriber.
func (o *Observer) Dispose() {
	o.deliverMu.Lock()
	defer o.deliverMu.Unlock()

	o.mu.Lock()
	if o.disposed {
		o.mu.Unlock()
		return
	}
	o.disposed = true
	if o.pending != nil {
		o.pending.Stop()
		o.pending = nil
	}
	o.gen++
	detach := o.detach
	o.detach = nil
	o.subs = make(map[uint64]subscriber)
	o.mu.Unlock()

	if detach != nil {
		detach()
	}
}

func (o *Observer) onResize() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.disposed {
		return
	}
	if o.pending != nil {
		o.pending.Stop()
	}
	o.gen++
	gen := o.gen
	o.pending = o.clock.AfterFunc(o.debounce, func() { o.settle(gen) })
}

func (o *Observer) settle(gen uint64) {
	o.deliverMu.Lock()
	defer o.deliverMu.Unlock()

	o.mu.Lock()
	// A stale timer that lost the race with Stop must not publish.
	if o.disposed || gen != o.gen {
		o.mu.Unlock()
		return
	}
	o.pending = nil
	prev := o.state
	next := StateFor(o.measure())
	if next == prev {
		o.mu.Unlock()
		return
	}
	o.state = next
	tierChanged := next.Tier != prev.Tier
	fns := make([]func(State), 0, len(o.subs))
	for _, s := range o.subs {
		if s.widthLevel || tierChanged {
			fns = append(fns, s.fn)
		}
	}
	o.mu.Unlock()

	if tierChanged {
		o.log.Debug("breakpoint tier changed",
			zap.Stringer("from", prev.Tier),
			zap.Stringer("to", next.Tier),
			zap.Int("width", next.Width),
		)
	}
	for _, fn := range fns {
		o.deliver(fn, next)
	}
}

func (o *Observer) deliver(fn func(State), st State) {
	defer func() {
		if r := recover(); r != nil {
			o.log.Error("breakpoint subscriber panicked", zap.Any("panic", r))
		}
	}()
	fn(st)
}

func (o *Observer) measure() int {
	if o.viewport == nil {
		return o.defaultWidth
	}
	return o.viewport.Width()
}
