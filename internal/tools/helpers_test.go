package tools

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"coursecanvas/internal/geom"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeClock advances by step per reading, so tests control the double-click
// window instead of sleeping.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

// stepClock is the standalone variant for router-only tests.
func stepClock(step time.Duration) func() time.Time {
	c := &fakeClock{t: time.Unix(1000, 0), step: step}
	return c.now
}

// testEng is a full engine plus the knobs tests need: the fake clock and
// the recorded commit stream.
type testEng struct {
	*Engine
	clock   *fakeClock
	commits []Change
}

// newTestEngine wires an engine with the identity viewport and a clock too
// slow to ever produce an accidental double-click.
func newTestEngine(t *testing.T) *testEng {
	t.Helper()
	e := NewEngine(IdentityViewport{}, nil, testLogger())
	te := &testEng{Engine: e, clock: &fakeClock{t: time.Unix(1000, 0), step: time.Second}}
	e.router.now = te.clock.now
	e.OnCommit(func(c Change) { te.commits = append(te.commits, c) })
	return te
}

func click(e *testEng, x, y float32) {
	e.Router().PointerDown(geom.Pt(x, y), Modifiers{})
	e.Router().PointerUp(geom.Pt(x, y), Modifiers{})
}

func drag(e *testEng, from, to geom.Point) {
	e.Router().PointerDown(from, Modifiers{})
	e.Router().PointerMove(to, Modifiers{})
	e.Router().PointerUp(to, Modifiers{})
}

// doubleClick issues the two downs of a pair inside the time and distance
// thresholds.
func doubleClick(e *testEng, x, y float32) {
	e.clock.step = 50 * time.Millisecond
	click(e, x, y)
	click(e, x, y)
	e.clock.step = time.Second
}

func typeString(e *testEng, s string) {
	for _, r := range s {
		e.Router().TypedRune(r)
	}
}
