package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coursecanvas/internal/geom"
	"coursecanvas/internal/scene"
)

func TestBrushStrokeCommitsPolyline(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.SetTool(ToolBrush))

	e.Router().PointerDown(geom.Pt(10, 10), Modifiers{})
	e.Router().PointerMove(geom.Pt(20, 15), Modifiers{})
	e.Router().PointerMove(geom.Pt(30, 25), Modifiers{})
	e.Router().PointerUp(geom.Pt(30, 25), Modifiers{})

	require.Equal(t, 1, e.Store().Len())
	p := e.Store().All()[0].(*scene.Path)
	assert.False(t, p.Closed)
	require.Len(t, p.Nodes, 3)
	for _, n := range p.Nodes {
		assert.Equal(t, scene.PointCorner, n.Type)
		assert.Nil(t, n.HandleIn)
		assert.Nil(t, n.HandleOut)
	}
}

func TestBrushSingleClickCommitsNothing(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.SetTool(ToolBrush))
	click(e, 10, 10)
	assert.Equal(t, 0, e.Store().Len())
}

func TestBrushDeactivateCommitsStroke(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.SetTool(ToolBrush))
	e.Router().PointerDown(geom.Pt(10, 10), Modifiers{})
	e.Router().PointerMove(geom.Pt(50, 50), Modifiers{})

	e.SetTool(ToolSelection)
	assert.Equal(t, 1, e.Store().Len())
}

func TestShapesDragCreatesFromSettings(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.SetTool(ToolShapes))
	kind := scene.ShapeEllipse
	e.SetToolSettings(ToolShapes, SettingsPatch{Shape: &kind})

	drag(e, geom.Pt(10, 10), geom.Pt(110, 60))

	require.Equal(t, 1, e.Store().Len())
	sh := e.Store().All()[0].(*scene.Shape)
	assert.Equal(t, scene.ShapeEllipse, sh.Shape)
	assert.Equal(t, geom.Rect{X: 10, Y: 10, Width: 100, Height: 50}, sh.Rect)
}

func TestShapesRejectsTinyAndOutsideDrags(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.SetTool(ToolShapes))

	drag(e, geom.Pt(10, 10), geom.Pt(15, 100))       // too narrow
	drag(e, geom.Pt(1300, 50), geom.Pt(1500, 200))   // wholly outside content
	assert.Equal(t, 0, e.Store().Len())
}

func TestTablesDragCreatesGrid(t *testing.T) {
	e := newTestEngine(t)
	require.True(t, e.SetTool(ToolTables))
	rows, cols := 4, 2
	e.SetToolSettings(ToolTables, SettingsPatch{TableRows: &rows, TableCols: &cols})

	drag(e, geom.Pt(10, 10), geom.Pt(210, 110))

	require.Equal(t, 1, e.Store().Len())
	tb := e.Store().All()[0].(*scene.Table)
	assert.Equal(t, 4, tb.Rows)
	assert.Equal(t, 2, tb.Cols)
}

func TestEraserRemovesOnDownAndDrag(t *testing.T) {
	e := newTestEngine(t)
	a := scene.NewShape(geom.Rect{X: 0, Y: 0, Width: 50, Height: 50}, scene.ShapeRectangle, "", "#1a1a1a", 1)
	b := scene.NewShape(geom.Rect{X: 100, Y: 0, Width: 50, Height: 50}, scene.ShapeRectangle, "", "#1a1a1a", 1)
	e.Store().Add(a)
	e.Store().Add(b)
	require.True(t, e.SetTool(ToolEraser))

	e.Router().PointerDown(geom.Pt(25, 25), Modifiers{})
	e.Router().PointerMove(geom.Pt(125, 25), Modifiers{})
	e.Router().PointerUp(geom.Pt(125, 25), Modifiers{})

	assert.Equal(t, 0, e.Store().Len())
	require.Len(t, e.commits, 2)
	assert.Equal(t, ChangeRemove, e.commits[0].Kind)
	assert.Equal(t, a.ID(), e.commits[0].TargetID)
	assert.Equal(t, b.ID(), e.commits[1].TargetID)
}

func TestEraserMoveWithoutDownDoesNothing(t *testing.T) {
	e := newTestEngine(t)
	a := scene.NewShape(geom.Rect{X: 0, Y: 0, Width: 50, Height: 50}, scene.ShapeRectangle, "", "#1a1a1a", 1)
	e.Store().Add(a)
	require.True(t, e.SetTool(ToolEraser))

	e.Router().PointerMove(geom.Pt(25, 25), Modifiers{})
	assert.Equal(t, 1, e.Store().Len())
}

func TestEngineApplyDoesNotRedispatch(t *testing.T) {
	e := newTestEngine(t)
	sh := scene.NewShape(geom.Rect{X: 0, Y: 0, Width: 50, Height: 50}, scene.ShapeRectangle, "", "#1a1a1a", 1)

	e.Apply(Change{Kind: ChangeInsert, Object: sh})
	assert.Equal(t, 1, e.Store().Len())
	assert.Empty(t, e.commits, "remote changes never echo back to commit sinks")

	e.Apply(Change{Kind: ChangeRemove, TargetID: sh.ID()})
	assert.Equal(t, 0, e.Store().Len())
	assert.Empty(t, e.commits)
}

func TestEngineClearCommits(t *testing.T) {
	e := newTestEngine(t)
	e.Store().Add(scene.NewShape(geom.Rect{Width: 10, Height: 10}, scene.ShapeRectangle, "", "#1a1a1a", 1))

	e.Clear()
	assert.Equal(t, 0, e.Store().Len())
	require.Len(t, e.commits, 1)
	assert.Equal(t, ChangeClear, e.commits[0].Kind)
}
