package tools

import (
	"coursecanvas/internal/geom"
	"coursecanvas/internal/scene"
)

// MinShapeDragSize is the smallest drag (per axis) that creates a shape or
// table.
const MinShapeDragSize = float32(8)

// ShapesTool creates rectangles and ellipses by drag; the kind comes from
// the tool settings.
type ShapesTool struct {
	env       *Env
	dragStart *geom.Point
}

func NewShapesTool(env *Env) *ShapesTool { return &ShapesTool{env: env} }

func (t *ShapesTool) Name() Name        { return ToolShapes }
func (t *ShapesTool) Activate()         {}
func (t *ShapesTool) WantsTarget() bool { return false }

// Deactivate drops an unfinished creation drag; nothing was added yet, so
// there is nothing to roll back.
func (t *ShapesTool) Deactivate() { t.dragStart = nil }

func (t *ShapesTool) PointerDown(ev PointerEvent) {
	start := ev.Point
	t.dragStart = &start
}

func (t *ShapesTool) PointerMove(PointerEvent) {}

func (t *ShapesTool) PointerUp(ev PointerEvent) {
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
	s := t.env.settings(ToolShapes)
	kind := s.Shape
	if kind == "" {
		kind = scene.ShapeRectangle
	}
	shape := scene.NewShape(rect, kind, "", s.Color, s.Size)
	t.env.Store.Add(shape)
	t.env.commit(Change{Kind: ChangeInsert, Object: shape.Clone()})
}

func (t *ShapesTool) Key(KeyEvent) {}
