package tools

import (
	"coursecanvas/internal/geom"
	"coursecanvas/internal/scene"
)

// CloseTolerance is how close (canvas units) the last node must be to the
// first for a commit-closed gesture to merge them into one node.
const CloseTolerance = float32(6)

// handleThreshold is the minimum drag distance before a click-and-drag
// starts producing Bezier handles instead of a plain corner node.
const handleThreshold = float32(3)

// Pen authors vector paths node by node. The state machine is Idle →
// (first click) Building → (commit gesture) Idle, emitting one PathObject
// per commit. Commit-open is Enter, Escape or a double-click; commit-closed
// is the C key or a click on the first node.
type Pen struct {
	env *Env

	building bool
	nodes    []scene.Node
	// editID is non-empty while re-editing a committed path; the commit
	// then replaces the object under its original id. The original is held
	// out of the store during the edit so it cannot render alongside the
	// preview or be erased from under the gesture; editBackup restores it
	// if the edit is discarded.
	editID     string
	editClosed bool
	editBackup *scene.Path

	dragging  bool
	dragIndex int
}

func NewPen(env *Env) *Pen { return &Pen{env: env} }

func (p *Pen) Name() Name        { return ToolPen }
func (p *Pen) Activate()         {}
func (p *Pen) WantsTarget() bool { return false }

// Deactivate commits any in-progress path open, so a mid-gesture tool
// switch never leaves a half-authored object behind.
func (p *Pen) Deactivate() {
	if p.building {
		p.commit(false)
	}
}

// Building reports whether a path is in progress.
func (p *Pen) Building() bool { return p.building }

// NodeCount returns the number of nodes authored so far.
func (p *Pen) NodeCount() int { return len(p.nodes) }

// Nodes returns a copy of the in-progress nodes, for preview rendering.
func (p *Pen) Nodes() []scene.Node {
	out := make([]scene.Node, len(p.nodes))
	copy(out, p.nodes)
	return out
}

func (p *Pen) PointerDown(ev PointerEvent) {
	if ev.DoubleClick {
		// The first click of the pair already added its node.
		if p.building {
			p.commit(false)
		}
		return
	}
	if p.building && len(p.nodes) >= 2 && ev.Point.Dist(p.nodes[0].Position) <= CloseTolerance {
		p.commit(true)
		return
	}
	if !p.building {
		p.building = true
		p.nodes = nil
	}
	p.nodes = append(p.nodes, scene.Node{Position: ev.Point, Type: scene.PointCorner})
	p.dragging = true
	p.dragIndex = len(p.nodes) - 1
}

// PointerMove while the creating click is held turns the new node smooth:
// its out-handle follows the drag vector and the previous node's in-handle
// mirrors it, as per the authoring model.
func (p *Pen) PointerMove(ev PointerEvent) {
	if !p.building || !p.dragging {
		return
	}
	node := &p.nodes[p.dragIndex]
	v := ev.Point.Sub(node.Position)
	if geom.Pt(0, 0).Dist(v) < handleThreshold {
		return
	}
	out := node.Position.Add(v)
	node.HandleOut = &out
	node.Type = scene.PointSmooth
	if p.dragIndex > 0 {
		prev := &p.nodes[p.dragIndex-1]
		in := prev.Position.Sub(v)
		prev.HandleIn = &in
		prev.Type = scene.PointSmooth
	}
}

func (p *Pen) PointerUp(PointerEvent) { p.dragging = false }

func (p *Pen) Key(ev KeyEvent) {
	if !p.building {
		return
	}
	switch {
	case ev.Key == KeyEnter || ev.Key == KeyEscape:
		p.commit(false)
	case ev.Rune == 'c' || ev.Rune == 'C':
		p.commit(true)
	}
}

// EditPath re-enters Building on a previously committed path. Existing node
// positions and handles are preserved exactly; the eventual commit replaces
// the object under its original id.
func (p *Pen) EditPath(id string) bool {
	if p.building {
		p.commit(false)
	}
	obj, ok := p.env.Store.Get(id).(*scene.Path)
	if !ok {
		return false
	}
	clone := obj.Clone().(*scene.Path)
	p.env.Store.Remove(id)
	p.nodes = clone.Nodes
	p.editID = id
	p.editClosed = clone.Closed
	p.editBackup = obj
	p.building = true
	return true
}

// InsertNode adds a node at index i of the in-progress path. Surrounding
// indices shift; no other node's handles change.
func (p *Pen) InsertNode(i int, n scene.Node) {
	if !p.building {
		return
	}
	if i < 0 {
		i = 0
	}
	if i > len(p.nodes) {
		i = len(p.nodes)
	}
	p.nodes = append(p.nodes, scene.Node{})
	copy(p.nodes[i+1:], p.nodes[i:])
	p.nodes[i] = n
}

// RemoveNode deletes the node at index i of the in-progress path.
func (p *Pen) RemoveNode(i int) {
	if !p.building || i < 0 || i >= len(p.nodes) {
		return
	}
	p.nodes = append(p.nodes[:i], p.nodes[i+1:]...)
}

func (p *Pen) commit(closed bool) {
	nodes := p.nodes
	editID := p.editID
	backup := p.editBackup
	if editID != "" && p.editClosed {
		// Re-editing a closed path keeps it closed regardless of the
		// commit gesture.
		closed = true
	}
	p.building = false
	p.dragging = false
	p.nodes = nil
	p.editID = ""
	p.editClosed = false
	p.editBackup = nil

	if closed && len(nodes) >= 2 {
		first, last := nodes[0], nodes[len(nodes)-1]
		if first.Position.Dist(last.Position) <= CloseTolerance {
			// Merge: the surviving first node carries the last node's
			// handles over.
			merged := first
			merged.HandleIn = last.HandleIn
			merged.HandleOut = last.HandleOut
			if merged.Smooth() {
				merged.Type = scene.PointSmooth
			} else {
				merged.Type = scene.PointCorner
			}
			nodes = append([]scene.Node{merged}, nodes[1:len(nodes)-1]...)
		}
	}

	if len(nodes) < 2 {
		// A single stray click commits nothing; resolved by policy, not an
		// error. A re-edit whittled below two nodes puts the untouched
		// original back.
		if backup != nil {
			p.env.Store.Add(backup)
		}
		return
	}

	s := p.env.settings(ToolPen)
	stroke := scene.StrokeStyle{Width: s.Size, Color: s.Color}
	var path *scene.Path
	if editID != "" {
		path = scene.RestorePath(editID, scene.Path{Nodes: nodes, Closed: closed, Stroke: stroke})
	} else {
		path = scene.NewPath(nodes, closed, stroke)
	}
	p.env.Store.Add(path)
	p.env.commit(Change{Kind: ChangeInsert, Object: path.Clone()})
}
