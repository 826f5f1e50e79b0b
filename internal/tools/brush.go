package tools

import (
	"coursecanvas/internal/geom"
	"coursecanvas/internal/scene"
)

// Brush captures freehand strokes: pointer-down starts a polyline, every
// move appends a point, pointer-up commits a path of corner nodes.
type Brush struct {
	env     *Env
	points  []geom.Point
	drawing bool
}

func NewBrush(env *Env) *Brush { return &Brush{env: env} }

func (b *Brush) Name() Name        { return ToolBrush }
func (b *Brush) Activate()         {}
func (b *Brush) WantsTarget() bool { return false }

// Deactivate commits the stroke in progress, if any.
func (b *Brush) Deactivate() { b.commit() }

func (b *Brush) PointerDown(ev PointerEvent) {
	b.drawing = true
	b.points = []geom.Point{ev.Point}
}

func (b *Brush) PointerMove(ev PointerEvent) {
	if !b.drawing {
		return
	}
	b.points = append(b.points, ev.Point)
}

func (b *Brush) PointerUp(PointerEvent) { b.commit() }

func (b *Brush) Key(KeyEvent) {}

// Points returns the stroke in progress, for preview rendering.
func (b *Brush) Points() []geom.Point {
	out := make([]geom.Point, len(b.points))
	copy(out, b.points)
	return out
}

func (b *Brush) commit() {
	points := b.points
	b.points = nil
	b.drawing = false
	if len(points) < 2 {
		return
	}
	nodes := make([]scene.Node, len(points))
	for i, p := range points {
		nodes[i] = scene.Node{Position: p, Type: scene.PointCorner}
	}
	s := b.env.settings(ToolBrush)
	path := scene.NewPath(nodes, false, scene.StrokeStyle{Width: s.Size, Color: s.Color})
	b.env.Store.Add(path)
	b.env.commit(Change{Kind: ChangeInsert, Object: path.Clone()})
}
