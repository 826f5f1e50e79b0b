package tools

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecanvas/internal/geom"
	"coursecanvas/internal/scene"
)

// recordTool captures the events the router delivers.
type recordTool struct {
	wantsTarget bool
	downs       []PointerEvent
	keys        []KeyEvent
	panicOnDown bool
}

func (r *recordTool) Name() Name        { return ToolBrush }
func (r *recordTool) Activate()         {}
func (r *recordTool) Deactivate()       {}
func (r *recordTool) WantsTarget() bool { return r.wantsTarget }
func (r *recordTool) PointerDown(ev PointerEvent) {
	if r.panicOnDown {
		panic("boom")
	}
	r.downs = append(r.downs, ev)
}
func (r *recordTool) PointerMove(PointerEvent) {}
func (r *recordTool) PointerUp(PointerEvent)   {}
func (r *recordTool) Key(ev KeyEvent)          { r.keys = append(r.keys, ev) }

func newRecordingRouter(rec *recordTool, view Viewport) (*Router, *scene.Store) {
	m := NewManager(testLogger())
	m.Register(rec)
	s := scene.NewStore()
	r := NewRouter(m, s, view, testLogger())
	return r, s
}

func TestDoubleClickWithinWindow(t *testing.T) {
	rec := &recordTool{}
	r, _ := newRecordingRouter(rec, nil)
	r.now = stepClock(100 * time.Millisecond)

	r.PointerDown(geom.Pt(10, 10), Modifiers{})
	r.PointerDown(geom.Pt(12, 11), Modifiers{})

	require.Len(t, rec.downs, 2)
	assert.False(t, rec.downs[0].DoubleClick)
	assert.True(t, rec.downs[1].DoubleClick, "second click of the pair carries the flag")
}

func TestTripleClickStartsFreshPair(t *testing.T) {
	rec := &recordTool{}
	r, _ := newRecordingRouter(rec, nil)
	r.now = stepClock(100 * time.Millisecond)

	r.PointerDown(geom.Pt(10, 10), Modifiers{})
	r.PointerDown(geom.Pt(10, 10), Modifiers{})
	r.PointerDown(geom.Pt(10, 10), Modifiers{})

	require.Len(t, rec.downs, 3)
	assert.False(t, rec.downs[2].DoubleClick)
}

func TestSlowClicksAreSingles(t *testing.T) {
	rec := &recordTool{}
	r, _ := newRecordingRouter(rec, nil)
	r.now = stepClock(time.Second)

	r.PointerDown(geom.Pt(10, 10), Modifiers{})
	r.PointerDown(geom.Pt(10, 10), Modifiers{})

	for i, d := range rec.downs {
		assert.False(t, d.DoubleClick, "down %d", i)
	}
}

func TestDistantClicksAreSingles(t *testing.T) {
	rec := &recordTool{}
	r, _ := newRecordingRouter(rec, nil)
	r.now = stepClock(100 * time.Millisecond)

	r.PointerDown(geom.Pt(10, 10), Modifiers{})
	r.PointerDown(geom.Pt(100, 10), Modifiers{})

	for i, d := range rec.downs {
		assert.False(t, d.DoubleClick, "down %d", i)
	}
}

func TestTargetResolvedOnlyWhenWanted(t *testing.T) {
	rec := &recordTool{}
	r, s := newRecordingRouter(rec, nil)
	s.Add(scene.NewShape(geom.Rect{Width: 100, Height: 100}, scene.ShapeRectangle, "", "#000000", 1))

	r.PointerDown(geom.Pt(50, 50), Modifiers{})
	require.Len(t, rec.downs, 1)
	assert.Nil(t, rec.downs[0].Target)

	rec.wantsTarget = true
	r.PointerDown(geom.Pt(50, 50), Modifiers{})
	require.Len(t, rec.downs, 2)
	assert.NotNil(t, rec.downs[1].Target)
}

type offsetView struct{ dx, dy, zoom float32 }

func (v offsetView) ToCanvas(p geom.Point) geom.Point {
	return geom.Pt((p.X-v.dx)/v.zoom, (p.Y-v.dy)/v.zoom)
}
func (v offsetView) Zoom() float32 { return v.zoom }

func TestViewportMapsScreenToCanvas(t *testing.T) {
	rec := &recordTool{}
	r, _ := newRecordingRouter(rec, offsetView{dx: 100, dy: 50, zoom: 2})

	r.PointerDown(geom.Pt(120, 70), Modifiers{})
	require.Len(t, rec.downs, 1)
	assert.Equal(t, geom.Pt(10, 10), rec.downs[0].Point)
}

func TestDoubleClickSlopIsScreenSpace(t *testing.T) {
	// Zoomed well out: 4 screen px spans 16 canvas units, but it is still
	// one spot under the finger.
	rec := &recordTool{}
	r, _ := newRecordingRouter(rec, offsetView{zoom: 0.25})
	r.now = stepClock(100 * time.Millisecond)

	r.PointerDown(geom.Pt(10, 10), Modifiers{})
	r.PointerDown(geom.Pt(14, 10), Modifiers{})

	require.Len(t, rec.downs, 2)
	assert.True(t, rec.downs[1].DoubleClick)
}

func TestDistantScreenClicksAreSinglesWhenZoomedIn(t *testing.T) {
	// Zoomed in: 30 screen px is under 4 canvas units, but the clicks are
	// visibly apart.
	rec := &recordTool{}
	r, _ := newRecordingRouter(rec, offsetView{zoom: 8})
	r.now = stepClock(100 * time.Millisecond)

	r.PointerDown(geom.Pt(10, 10), Modifiers{})
	r.PointerDown(geom.Pt(40, 10), Modifiers{})

	for i, d := range rec.downs {
		assert.False(t, d.DoubleClick, "down %d", i)
	}
}

func TestPanicInToolIsContained(t *testing.T) {
	rec := &recordTool{panicOnDown: true}
	r, _ := newRecordingRouter(rec, nil)

	assert.NotPanics(t, func() { r.PointerDown(geom.Pt(1, 1), Modifiers{}) })

	// The router keeps dispatching after the dropped gesture.
	rec.panicOnDown = false
	r.PointerDown(geom.Pt(2, 2), Modifiers{})
	assert.Len(t, rec.downs, 1)
}

func TestTypedRuneArrivesAsKeyEvent(t *testing.T) {
	rec := &recordTool{}
	r, _ := newRecordingRouter(rec, nil)
	r.TypedRune('c')
	require.Len(t, rec.keys, 1)
	assert.Equal(t, 'c', rec.keys[0].Rune)
	assert.Equal(t, Key(""), rec.keys[0].Key)
}
