package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecanvas/internal/geom"
)

func textEngine(t *testing.T) *testEng {
	e := newTestEngine(t)
	require.True(t, e.SetTool(ToolText))
	return e
}

func TestTextDragCreatesActiveArea(t *testing.T) {
	e := textEngine(t)
	drag(e, geom.Pt(10, 10), geom.Pt(210, 90))

	require.Equal(t, 1, e.Store().Len())
	area := e.ActiveTextArea()
	require.NotNil(t, area)
	assert.Equal(t, geom.Rect{X: 10, Y: 10, Width: 200, Height: 80}, area.Rect)

	tool := e.Manager().Tool(ToolText).(*TextAreaTool)
	assert.True(t, tool.Blinker().Running())
	assert.True(t, tool.Blinker().Visible())

	require.Len(t, e.commits, 1)
	assert.Equal(t, ChangeInsert, e.commits[0].Kind)
}

func TestTextDragBelowMinimumCreatesNothing(t *testing.T) {
	e := textEngine(t)
	drag(e, geom.Pt(10, 10), geom.Pt(25, 200)) // 15 wide
	drag(e, geom.Pt(10, 10), geom.Pt(200, 25)) // 15 tall
	assert.Equal(t, 0, e.Store().Len())
	assert.Empty(t, e.commits)
}

func TestTextDragWhollyOutsideContentRejected(t *testing.T) {
	e := textEngine(t)
	// Default content bounds end at 1200x900.
	drag(e, geom.Pt(1300, 50), geom.Pt(1500, 200))
	assert.Equal(t, 0, e.Store().Len())

	// Partially inside is accepted.
	drag(e, geom.Pt(1100, 50), geom.Pt(1300, 200))
	assert.Equal(t, 1, e.Store().Len())
}

func TestTextSecondAreaDeactivatesFirst(t *testing.T) {
	e := textEngine(t)
	drag(e, geom.Pt(10, 10), geom.Pt(210, 90))
	first := e.ActiveTextArea()
	require.NotNil(t, first)

	drag(e, geom.Pt(10, 200), geom.Pt(210, 290))
	second := e.ActiveTextArea()
	require.NotNil(t, second)

	assert.NotEqual(t, first.ID(), second.ID())
	assert.False(t, first.Active)
	assert.Equal(t, 2, e.Store().Len())
}

func TestTextTypingEditsActiveArea(t *testing.T) {
	e := textEngine(t)
	drag(e, geom.Pt(10, 10), geom.Pt(210, 90))

	typeString(e, "Hi")
	e.Router().Key(KeyEvent{Key: KeyEnter})
	e.Router().Key(KeyEvent{Key: KeyTab})
	typeString(e, "x")

	assert.Equal(t, "Hi\n    x", e.ActiveTextArea().Buffer.Text)
}

func TestTextSelectAllThenTypeReplaces(t *testing.T) {
	e := textEngine(t)
	drag(e, geom.Pt(10, 10), geom.Pt(210, 90))
	typeString(e, "abc")

	e.Router().Key(KeyEvent{Rune: 'a', Mods: Modifiers{Ctrl: true}})
	typeString(e, "z")

	assert.Equal(t, "z", e.ActiveTextArea().Buffer.Text)
}

func TestTextWordNavigation(t *testing.T) {
	e := textEngine(t)
	drag(e, geom.Pt(10, 10), geom.Pt(210, 90))
	typeString(e, "foo bar")

	e.Router().Key(KeyEvent{Key: KeyLeft, Mods: Modifiers{Ctrl: true}})
	assert.Equal(t, 4, e.ActiveTextArea().Buffer.Cursor)
	e.Router().Key(KeyEvent{Key: KeyHome})
	assert.Equal(t, 0, e.ActiveTextArea().Buffer.Cursor)
	e.Router().Key(KeyEvent{Key: KeyRight, Mods: Modifiers{Ctrl: true}})
	assert.Equal(t, 3, e.ActiveTextArea().Buffer.Cursor)
	e.Router().Key(KeyEvent{Key: KeyEnd})
	assert.Equal(t, 7, e.ActiveTextArea().Buffer.Cursor)
}

func TestTextKeyWithoutActiveAreaDiscarded(t *testing.T) {
	e := textEngine(t)
	drag(e, geom.Pt(10, 10), geom.Pt(210, 90))
	typeString(e, "keep")

	// Click outside every area ends the editing session.
	click(e, 600, 600)
	require.Nil(t, e.ActiveTextArea())

	typeString(e, "dropped")
	assert.Equal(t, "keep", e.Store().Texts()[0].Buffer.Text)
}

func TestTextSingleClickDoesNotActivate(t *testing.T) {
	e := textEngine(t)
	drag(e, geom.Pt(10, 10), geom.Pt(210, 90))
	click(e, 600, 600)
	require.Nil(t, e.ActiveTextArea())

	click(e, 100, 50) // inside the area
	assert.Nil(t, e.ActiveTextArea(), "activation needs a double-click")
}

func TestTextDoubleClickResumesEditingAtEnd(t *testing.T) {
	e := textEngine(t)
	drag(e, geom.Pt(10, 10), geom.Pt(210, 90))
	typeString(e, "hello")
	click(e, 600, 600)
	require.Nil(t, e.ActiveTextArea())

	doubleClick(e, 100, 50)
	area := e.ActiveTextArea()
	require.NotNil(t, area)
	assert.Equal(t, 5, area.Buffer.Cursor)

	tool := e.Manager().Tool(ToolText).(*TextAreaTool)
	assert.True(t, tool.Blinker().Running())
}

func TestTextDeactivationStopsBlinkAndCommits(t *testing.T) {
	e := textEngine(t)
	drag(e, geom.Pt(10, 10), geom.Pt(210, 90))
	typeString(e, "note")
	id := e.ActiveTextArea().ID()
	before := len(e.commits)

	e.SetTool(ToolSelection)

	tool := e.Manager().Tool(ToolText).(*TextAreaTool)
	assert.False(t, tool.Blinker().Running())
	assert.Nil(t, e.ActiveTextArea())

	require.Greater(t, len(e.commits), before)
	last := e.commits[len(e.commits)-1]
	assert.Equal(t, ChangeInsert, last.Kind)
	assert.Equal(t, id, last.Object.ID(), "the finished edit replays as an insert under the same id")
}
