package tools

import (
	"log/slog"
	"time"

	"coursecanvas/internal/geom"
	"coursecanvas/internal/scene"
)

// Viewport is the external coordinate provider: it maps screen points to
// canvas space and reports the current zoom factor. The engine consumes it,
// never implements it.
type Viewport interface {
	ToCanvas(p geom.Point) geom.Point
	Zoom() float32
}

// IdentityViewport is the no-pan no-zoom transform, used headless and in
// tests.
type IdentityViewport struct{}

func (IdentityViewport) ToCanvas(p geom.Point) geom.Point { return p }
func (IdentityViewport) Zoom() float32                    { return 1 }

// Click-pair thresholds for double-click detection. The slop is measured in
// screen space, before the viewport transform, so the tolerance under the
// finger is the same at every zoom level.
const (
	doubleClickDelay = 400 * time.Millisecond
	doubleClickSlop  = float32(5)
)

// Router converts raw input events into tool callbacks. One event is fully
// processed before the next; the router runs on the single event-dispatch
// thread. A panic escaping a tool callback is recovered here: the gesture
// is dropped and the store stays as the last completed mutation left it.
type Router struct {
	manager *Manager
	store   *scene.Store
	view    Viewport
	log     *slog.Logger

	lastDown   time.Time
	lastScreen geom.Point

	// now is stubbed in tests to drive the double-click window.
	now func() time.Time
}

func NewRouter(m *Manager, s *scene.Store, view Viewport, log *slog.Logger) *Router {
	if view == nil {
		view = IdentityViewport{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &Router{manager: m, store: s, view: view, log: log, now: time.Now}
}

// SetViewport swaps in the host's coordinate provider once its canvas
// widget exists. Call before the first event is routed.
func (r *Router) SetViewport(v Viewport) {
	if v != nil {
		r.view = v
	}
}

// PointerDown routes a raw pointer-down at a screen-space point. Click vs
// double-click is disambiguated here by a time+distance threshold; the
// second click of a pair is delivered through the same handler with the
// DoubleClick flag set, never as an independent extra call.
func (r *Router) PointerDown(screen geom.Point, mods Modifiers) {
	tool := r.manager.activeRef()
	if tool == nil {
		return
	}
	pt := r.view.ToCanvas(screen)

	now := r.now()
	double := now.Sub(r.lastDown) <= doubleClickDelay && screen.Dist(r.lastScreen) <= doubleClickSlop
	if double {
		// A triple click starts a fresh pair.
		r.lastDown = time.Time{}
	} else {
		r.lastDown = now
		r.lastScreen = screen
	}

	ev := PointerEvent{Point: pt, Mods: mods, DoubleClick: double}
	if tool.WantsTarget() {
		ev.Target = r.store.TopmostAt(pt)
	}
	r.dispatch(func() { tool.PointerDown(ev) })
}

// PointerMove routes a raw pointer-move. No target resolution: moves are
// high-frequency and tools that need mid-gesture hits resolve them
// themselves.
func (r *Router) PointerMove(screen geom.Point, mods Modifiers) {
	tool := r.manager.activeRef()
	if tool == nil {
		return
	}
	ev := PointerEvent{Point: r.view.ToCanvas(screen), Mods: mods}
	r.dispatch(func() { tool.PointerMove(ev) })
}

// PointerUp routes a raw pointer-up.
func (r *Router) PointerUp(screen geom.Point, mods Modifiers) {
	tool := r.manager.activeRef()
	if tool == nil {
		return
	}
	ev := PointerEvent{Point: r.view.ToCanvas(screen), Mods: mods}
	r.dispatch(func() { tool.PointerUp(ev) })
}

// Key routes a keyboard event to the active tool only. Tools that have no
// use for it (no active text area, no pen path in progress) accept and
// discard it; a stray key press is never an error.
func (r *Router) Key(ev KeyEvent) {
	tool := r.manager.activeRef()
	if tool == nil {
		return
	}
	r.dispatch(func() { tool.Key(ev) })
}

// TypedRune routes printable input.
func (r *Router) TypedRune(ch rune) {
	r.Key(KeyEvent{Rune: ch})
}

func (r *Router) dispatch(fn func()) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("tool callback panic, gesture dropped",
				"tool", string(r.manager.ActiveTool()), "panic", rec)
		}
	}()
	fn()
}
