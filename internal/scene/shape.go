package scene

import (
	"coursecanvas/internal/geom"
)

// ShapeKind selects the geometry of a Shape.
type ShapeKind string

const (
	ShapeRectangle ShapeKind = "rectangle"
	ShapeEllipse   ShapeKind = "ellipse"
)

// Shape is a drag-created primitive. CornerRadius only applies to
// rectangles and is clamped to half the shorter side.
type Shape struct {
	id           string
	Rect         geom.Rect `json:"rect"`
	Shape        ShapeKind `json:"shape"`
	CornerRadius float32   `json:"cornerRadius"`
	FillColor    string    `json:"fillColor"`
	StrokeColor  string    `json:"strokeColor"`
	StrokeWidth  float32   `json:"strokeWidth"`
}

func NewShape(rect geom.Rect, kind ShapeKind, fill, stroke string, width float32) *Shape {
	return &Shape{id: newID(), Rect: rect, Shape: kind, FillColor: fill, StrokeColor: stroke, StrokeWidth: width}
}

// RestoreShape rebuilds a shape under an existing id.
func RestoreShape(id string, v Shape) *Shape {
	v.id = id
	return &v
}

func (s *Shape) ID() string { return s.id }
func (s *Shape) Kind() Kind { return KindShape }

func (s *Shape) Bounds() geom.Rect { return s.Rect }

func (s *Shape) Translate(d geom.Point) { s.Rect = s.Rect.Translate(d) }

// Resize sets the size only; the origin stays put.
func (s *Shape) Resize(w, h float32) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	s.Rect.Width = w
	s.Rect.Height = h
}

// SetCornerRadius is a cosmetic edit: it must never move the origin.
func (s *Shape) SetCornerRadius(r float32) {
	maxR := min32(s.Rect.Width, s.Rect.Height) / 2
	if r < 0 {
		r = 0
	}
	if r > maxR {
		r = maxR
	}
	s.CornerRadius = r
}

func (s *Shape) Hit(p geom.Point) bool {
	switch s.Shape {
	case ShapeEllipse:
		rx, ry := s.Rect.Width/2, s.Rect.Height/2
		if rx == 0 || ry == 0 {
			return false
		}
		c := s.Rect.Center()
		dx := (p.X - c.X) / rx
		dy := (p.Y - c.Y) / ry
		return dx*dx+dy*dy <= 1
	default:
		if !s.Rect.Contains(p) {
			return false
		}
		if s.CornerRadius <= 0 {
			return true
		}
		// Inside the core rect (inset by the radius) is always a hit;
		// otherwise the point must fall inside one of the corner circles.
		core := s.Rect.Inset(s.CornerRadius, s.CornerRadius)
		if core.Width > 0 && core.Height > 0 && core.Contains(p) {
			return true
		}
		if p.X >= s.Rect.X+s.CornerRadius && p.X <= s.Rect.X+s.Rect.Width-s.CornerRadius {
			return true
		}
		if p.Y >= s.Rect.Y+s.CornerRadius && p.Y <= s.Rect.Y+s.Rect.Height-s.CornerRadius {
			return true
		}
		r2 := s.CornerRadius * s.CornerRadius
		for _, cx := range [2]float32{s.Rect.X + s.CornerRadius, s.Rect.X + s.Rect.Width - s.CornerRadius} {
			for _, cy := range [2]float32{s.Rect.Y + s.CornerRadius, s.Rect.Y + s.Rect.Height - s.CornerRadius} {
				dx := p.X - cx
				dy := p.Y - cy
				if dx*dx+dy*dy <= r2 {
					return true
				}
			}
		}
		return false
	}
}

func (s *Shape) Clone() Object {
	c := *s
	return &c
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
