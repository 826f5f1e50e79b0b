package tools

import (
	"coursecanvas/internal/geom"
	"coursecanvas/internal/scene"
)

// HandleSize is the square edge of a transform handle, canvas units.
const HandleSize = float32(8)

// GestureKind classifies an in-progress selection gesture.
type GestureKind string

const (
	GestureMove   GestureKind = "move"
	GestureResize GestureKind = "resize"
	GestureCorner GestureKind = "corner"
)

// gesture is the transient descriptor of an active drag/transform.
type gesture struct {
	kind       GestureKind
	targetID   string
	start      geom.Point
	last       geom.Point
	origBounds geom.Rect
	origRadius float32
}

// resizable covers the kinds whose size handle edits width/height in place.
// Paths have no size handle; they only translate.
type resizable interface {
	Resize(w, h float32)
}

// SelectionTool picks, drags and transforms existing objects. Its selection
// set and gesture descriptor are transient: rebuilt on every pick, cleared
// on tool switch or a deselecting click. The outlines and handles it wants
// drawn are overlay-only and never enter the store, so they are never
// pickable.
type SelectionTool struct {
	env *Env

	selected []string
	drag     *gesture
}

func NewSelectionTool(env *Env) *SelectionTool { return &SelectionTool{env: env} }

func (s *SelectionTool) Name() Name        { return ToolSelection }
func (s *SelectionTool) Activate()         {}
func (s *SelectionTool) WantsTarget() bool { return true }

// Deactivate commits any in-flight gesture at its current geometry (never a
// half-applied transform) and clears the selection.
func (s *SelectionTool) Deactivate() {
	s.finishGesture()
	s.selected = nil
}

// Selected returns the selected object ids.
func (s *SelectionTool) Selected() []string {
	out := make([]string, len(s.selected))
	copy(out, s.selected)
	return out
}

// Overlay describes one render-only selection visual.
type Overlay struct {
	Outline geom.Rect
	Resize  geom.Rect
	Corner  *geom.Rect
}

// Overlays returns the outline and handle rects for the current selection.
func (s *SelectionTool) Overlays() []Overlay {
	var out []Overlay
	for _, id := range s.selected {
		obj := s.env.Store.Get(id)
		if obj == nil {
			continue
		}
		b := obj.Bounds()
		o := Overlay{
			Outline: b.Pad(2),
			Resize:  handleRect(geom.Pt(b.X+b.Width, b.Y+b.Height)),
		}
		if _, ok := obj.(*scene.Shape); ok {
			c := handleRect(geom.Pt(b.X+b.Width, b.Y))
			o.Corner = &c
		}
		out = append(out, o)
	}
	return out
}

func handleRect(center geom.Point) geom.Rect {
	h := HandleSize / 2
	return geom.Rect{X: center.X - h, Y: center.Y - h, Width: HandleSize, Height: HandleSize}
}

func (s *SelectionTool) PointerDown(ev PointerEvent) {
	if ev.DoubleClick {
		if target, ok := ev.Target.(*scene.Text); ok {
			// Cross-tool contract: ask the manager for a text edit instead
			// of reaching into the text tool.
			s.selected = nil
			s.env.RequestTextEdit(target.ID())
			return
		}
	}

	// Handles take priority over object picking so a handle overlapping a
	// neighbour still transforms the selection.
	if kind, obj := s.handleAt(ev.Point); obj != nil {
		s.beginGesture(kind, obj, ev.Point)
		return
	}

	if ev.Target == nil {
		s.selected = nil
		return
	}
	s.selected = []string{ev.Target.ID()}
	s.beginGesture(GestureMove, ev.Target, ev.Point)
}

func (s *SelectionTool) PointerMove(ev PointerEvent) {
	if s.drag == nil {
		return
	}
	obj := s.env.Store.Get(s.drag.targetID)
	if obj == nil {
		s.drag = nil
		return
	}
	switch s.drag.kind {
	case GestureMove:
		obj.Translate(ev.Point.Sub(s.drag.last))
	case GestureResize:
		if r, ok := obj.(resizable); ok {
			d := ev.Point.Sub(s.drag.start)
			r.Resize(s.drag.origBounds.Width+d.X, s.drag.origBounds.Height+d.Y)
		}
	case GestureCorner:
		if sh, ok := obj.(*scene.Shape); ok {
			// Dragging the corner handle left rounds the corner further.
			sh.SetCornerRadius(s.drag.origRadius + (s.drag.start.X - ev.Point.X))
		}
	}
	s.drag.last = ev.Point
	s.env.Store.Changed()
}

func (s *SelectionTool) PointerUp(PointerEvent) { s.finishGesture() }

// Key deletes the selection on Delete/Backspace; everything else is
// discarded.
func (s *SelectionTool) Key(ev KeyEvent) {
	if ev.Key != KeyDelete && ev.Key != KeyBackspace {
		return
	}
	for _, id := range s.selected {
		if s.env.Store.Remove(id) {
			s.env.commit(Change{Kind: ChangeRemove, TargetID: id})
		}
	}
	s.selected = nil
}

func (s *SelectionTool) beginGesture(kind GestureKind, obj scene.Object, at geom.Point) {
	g := &gesture{
		kind:       kind,
		targetID:   obj.ID(),
		start:      at,
		last:       at,
		origBounds: obj.Bounds(),
	}
	if sh, ok := obj.(*scene.Shape); ok {
		g.origRadius = sh.CornerRadius
	}
	s.drag = g
}

// finishGesture commits the gesture's final geometry. The object was edited
// in place during the drag, so commit just hands the snapshot over. A click
// that never moved anything mutated nothing and commits nothing.
func (s *SelectionTool) finishGesture() {
	if s.drag == nil {
		return
	}
	g := s.drag
	s.drag = nil
	obj := s.env.Store.Get(g.targetID)
	if obj == nil {
		return
	}
	changed := obj.Bounds() != g.origBounds
	if sh, ok := obj.(*scene.Shape); ok && sh.CornerRadius != g.origRadius {
		changed = true
	}
	if !changed {
		return
	}
	s.env.Store.Changed()
	s.env.commit(Change{Kind: ChangeInsert, Object: obj.Clone()})
}

// handleAt returns the handle kind under p for the current selection.
func (s *SelectionTool) handleAt(p geom.Point) (GestureKind, scene.Object) {
	for _, id := range s.selected {
		obj := s.env.Store.Get(id)
		if obj == nil {
			continue
		}
		b := obj.Bounds()
		if handleRect(geom.Pt(b.X+b.Width, b.Y+b.Height)).Contains(p) {
			if _, ok := obj.(resizable); ok {
				return GestureResize, obj
			}
			return GestureMove, obj
		}
		if _, ok := obj.(*scene.Shape); ok {
			if handleRect(geom.Pt(b.X+b.Width, b.Y)).Contains(p) {
				return GestureCorner, obj
			}
		}
	}
	return "", nil
}
