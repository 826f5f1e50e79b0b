package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecanvas/internal/geom"
)

func TestSelectionActiveByDefault(t *testing.T) {
	e := newTestEngine(t)
	assert.Equal(t, ToolSelection, e.ActiveTool())
}

func TestSetToolUnknownLeavesCurrent(t *testing.T) {
	e := newTestEngine(t)
	assert.False(t, e.SetTool("laser"))
	assert.Equal(t, ToolSelection, e.ActiveTool())
}

func TestSetToolNotifiesObservers(t *testing.T) {
	e := newTestEngine(t)
	var got []Name
	e.Manager().Observe(func(n Name) { got = append(got, n) })

	require.True(t, e.SetTool(ToolPen))
	require.True(t, e.SetTool(ToolText))
	assert.Equal(t, []Name{ToolPen, ToolText}, got)
}

func TestSettingsAreIsolatedPerTool(t *testing.T) {
	e := newTestEngine(t)
	red := "#d32f2f"
	require.True(t, e.SetToolSettings(ToolPen, SettingsPatch{Color: &red}))

	pen, _ := e.ToolSettings(ToolPen)
	brush, _ := e.ToolSettings(ToolBrush)
	assert.Equal(t, red, pen.Color)
	assert.NotEqual(t, red, brush.Color)
}

func TestApplySettingsUnknownTool(t *testing.T) {
	e := newTestEngine(t)
	size := float32(9)
	assert.False(t, e.SetToolSettings("laser", SettingsPatch{Size: &size}))
	_, ok := e.ToolSettings("laser")
	assert.False(t, ok)
}

func TestPatchOnlyTouchesSetFields(t *testing.T) {
	e := newTestEngine(t)
	before, _ := e.ToolSettings(ToolText)
	size := float32(24)
	e.SetToolSettings(ToolText, SettingsPatch{FontSize: &size})
	after, _ := e.ToolSettings(ToolText)
	assert.Equal(t, float32(24), after.FontSize)
	assert.Equal(t, before.FontFamily, after.FontFamily)
	assert.Equal(t, before.Color, after.Color)
}

func TestSwitchingAwayReleasesGesture(t *testing.T) {
	e := newTestEngine(t)
	e.SetTool(ToolPen)
	click(e, 10, 10)
	click(e, 80, 10)

	pen := e.Manager().Tool(ToolPen).(*Pen)
	require.True(t, pen.Building())

	e.SetTool(ToolSelection)
	assert.False(t, pen.Building())
	assert.Equal(t, 1, e.Store().Len(), "in-progress path commits on switch")
}

func TestRequestTextEditSwitchesTool(t *testing.T) {
	e := newTestEngine(t)
	e.SetTool(ToolText)
	drag(e, geom.Pt(10, 10), geom.Pt(200, 80))
	area := e.ActiveTextArea()
	require.NotNil(t, area)

	e.SetTool(ToolSelection)
	require.Nil(t, e.ActiveTextArea(), "switching away deactivates")

	require.True(t, e.Manager().RequestTextEdit(area.ID()))
	assert.Equal(t, ToolText, e.ActiveTool())
	require.NotNil(t, e.ActiveTextArea())
	assert.Equal(t, area.ID(), e.ActiveTextArea().ID())
}

func TestRequestTextEditUnknownID(t *testing.T) {
	e := newTestEngine(t)
	assert.False(t, e.Manager().RequestTextEdit("missing"))
}
