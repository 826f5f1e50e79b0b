package tools

import (
	"coursecanvas/internal/geom"
	"coursecanvas/internal/scene"
)

// TablesTool creates grid tables by drag; rows and columns come from the
// tool settings.
type TablesTool struct {
	env       *Env
	dragStart *geom.Point
}

func NewTablesTool(env *Env) *TablesTool { return &TablesTool{env: env} }

func (t *TablesTool) Name() Name        { return ToolTables }
func (t *TablesTool) Activate()         {}
func (t *TablesTool) Deactivate()       { t.dragStart = nil }
func (t *TablesTool) WantsTarget() bool { return false }

func (t *TablesTool) PointerDown(ev PointerEvent) {
	start := ev.Point
	t.dragStart = &start
}

func (t *TablesTool) PointerMove(PointerEvent) {}

func (t *TablesTool) PointerUp(ev PointerEvent) {
	if t.dragStart == nil {
		return
	}
	rect := geom.FromCorners(*t.dragStart, ev.Point)
	t.dragStart = nil
	if rect.Width < MinShapeDragSize || rect.Height < MinShapeDragSize {
		return
	}
	if !rect.Overlaps(t.env.Content()) {
		return
	}
	s := t.env.settings(ToolTables)
	table := scene.NewTable(rect, s.TableRows, s.TableCols, s.Color)
	t.env.Store.Add(table)
	t.env.commit(Change{Kind: ChangeInsert, Object: table.Clone()})
}

func (t *TablesTool) Key(KeyEvent) {}
