package scene

import (
	"github.com/chewxy/math32"

	"coursecanvas/internal/geom"
)

// PointType classifies a path node.
type PointType string

const (
	PointCorner PointType = "corner"
	PointSmooth PointType = "smooth"
)

// Node is one vertex of a vector path. Handles are stored in absolute
// canvas coordinates, not relative to the position; a nil handle means the
// segment on that side is a straight line. A node with at least one handle
// is smooth.
type Node struct {
	Position  geom.Point  `json:"position"`
	HandleIn  *geom.Point `json:"handleIn,omitempty"`
	HandleOut *geom.Point `json:"handleOut,omitempty"`
	Type      PointType   `json:"type"`
}

// Smooth reports whether the node carries at least one handle.
func (n Node) Smooth() bool { return n.HandleIn != nil || n.HandleOut != nil }

// retype keeps Type consistent with the handle state.
func (n *Node) retype() {
	if n.Smooth() {
		n.Type = PointSmooth
	} else {
		n.Type = PointCorner
	}
}

func (n Node) clone() Node {
	c := n
	if n.HandleIn != nil {
		h := *n.HandleIn
		c.HandleIn = &h
	}
	if n.HandleOut != nil {
		h := *n.HandleOut
		c.HandleOut = &h
	}
	return c
}

// StrokeStyle is the cosmetic state of a path.
type StrokeStyle struct {
	Width float32 `json:"width"`
	Color string  `json:"color"`
}

// Path is an authored vector path, open or closed.
type Path struct {
	id     string
	Nodes  []Node      `json:"nodes"`
	Closed bool        `json:"closed"`
	Stroke StrokeStyle `json:"stroke"`
}

// NewPath creates a path with a fresh id, taking ownership of nodes.
func NewPath(nodes []Node, closed bool, stroke StrokeStyle) *Path {
	return &Path{id: newID(), Nodes: nodes, Closed: closed, Stroke: stroke}
}

// RestorePath rebuilds a path under an existing id, for objects arriving
// from a collaboration op or a re-edit commit.
func RestorePath(id string, v Path) *Path {
	v.id = id
	return &v
}

func (p *Path) ID() string { return p.id }
func (p *Path) Kind() Kind { return KindPath }

func (p *Path) Bounds() geom.Rect {
	pts := make([]geom.Point, 0, len(p.Nodes)*3)
	for _, n := range p.Nodes {
		pts = append(pts, n.Position)
		if n.HandleIn != nil {
			pts = append(pts, *n.HandleIn)
		}
		if n.HandleOut != nil {
			pts = append(pts, *n.HandleOut)
		}
	}
	return geom.BoundsOf(pts, p.Stroke.Width/2)
}

func (p *Path) Translate(d geom.Point) {
	for i := range p.Nodes {
		n := &p.Nodes[i]
		n.Position = n.Position.Add(d)
		if n.HandleIn != nil {
			*n.HandleIn = n.HandleIn.Add(d)
		}
		if n.HandleOut != nil {
			*n.HandleOut = n.HandleOut.Add(d)
		}
	}
}

// pickSlack is how far a pick may miss a path segment and still hit it.
const pickSlack = 4

// Hit tests p against the node polyline. Curved segments are tested against
// their chord, which is close enough for picking.
func (p *Path) Hit(pt geom.Point) bool {
	if len(p.Nodes) == 0 {
		return false
	}
	slack := math32.Max(pickSlack, p.Stroke.Width/2+2)
	if len(p.Nodes) == 1 {
		return p.Nodes[0].Position.Dist(pt) <= slack
	}
	last := len(p.Nodes) - 1
	for i := 0; i < last; i++ {
		if segDist(pt, p.Nodes[i].Position, p.Nodes[i+1].Position) <= slack {
			return true
		}
	}
	if p.Closed && segDist(pt, p.Nodes[last].Position, p.Nodes[0].Position) <= slack {
		return true
	}
	return false
}

// segDist is the distance from p to segment a-b.
func segDist(p, a, b geom.Point) float32 {
	ab := b.Sub(a)
	ap := p.Sub(a)
	len2 := ab.X*ab.X + ab.Y*ab.Y
	if len2 == 0 {
		return p.Dist(a)
	}
	t := (ap.X*ab.X + ap.Y*ab.Y) / len2
	t = math32.Min(1, math32.Max(0, t))
	return p.Dist(a.Add(ab.Mul(t)))
}

func (p *Path) Clone() Object {
	nodes := make([]Node, len(p.Nodes))
	for i, n := range p.Nodes {
		nodes[i] = n.clone()
	}
	return &Path{id: p.id, Nodes: nodes, Closed: p.Closed, Stroke: p.Stroke}
}

// InsertNode inserts n at index i, shifting later nodes. Out-of-range
// indices clamp to the ends. Existing nodes are untouched.
func (p *Path) InsertNode(i int, n Node) {
	if i < 0 {
		i = 0
	}
	if i > len(p.Nodes) {
		i = len(p.Nodes)
	}
	n.retype()
	p.Nodes = append(p.Nodes, Node{})
	copy(p.Nodes[i+1:], p.Nodes[i:])
	p.Nodes[i] = n
}

// RemoveNode deletes the node at index i. Out-of-range indices are a no-op.
func (p *Path) RemoveNode(i int) {
	if i < 0 || i >= len(p.Nodes) {
		return
	}
	p.Nodes = append(p.Nodes[:i], p.Nodes[i+1:]...)
}
