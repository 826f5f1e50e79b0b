// Package geom provides the float32 points, vectors and rectangles used by
// the canvas engine. Everything is in canvas space unless noted otherwise.
package geom

import "github.com/chewxy/math32"

// Point is a location (or vector) on the canvas.
type Point struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
}

func Pt(x, y float32) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Neg mirrors the vector through the origin.
func (p Point) Neg() Point { return Point{-p.X, -p.Y} }

func (p Point) Mul(s float32) Point { return Point{p.X * s, p.Y * s} }

// Dist returns the euclidean distance between two points.
func (p Point) Dist(q Point) float32 {
	return math32.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rect is an axis-aligned rectangle. X,Y is the origin (top-left);
// Width and Height are non-negative for every rect produced by FromCorners.
type Rect struct {
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
}

// FromCorners builds the rect spanned by two arbitrary corner points.
func FromCorners(a, b Point) Rect {
	return Rect{
		X:      math32.Min(a.X, b.X),
		Y:      math32.Min(a.Y, b.Y),
		Width:  math32.Abs(b.X - a.X),
		Height: math32.Abs(b.Y - a.Y),
	}
}

func (r Rect) Origin() Point { return Point{r.X, r.Y} }

func (r Rect) Center() Point {
	return Point{r.X + r.Width/2, r.Y + r.Height/2}
}

// Contains reports whether p lies inside the rect, edges included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Overlaps reports whether the two rects share any area or edge.
func (r Rect) Overlaps(o Rect) bool {
	return !(r.X+r.Width < o.X || o.X+o.Width < r.X ||
		r.Y+r.Height < o.Y || o.Y+o.Height < r.Y)
}

// Translate moves the rect by the given delta, size unchanged.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Inset shrinks the rect by dx/dy on every side. The result may have
// negative size; callers that care must check.
func (r Rect) Inset(dx, dy float32) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, Width: r.Width - 2*dx, Height: r.Height - 2*dy}
}

// Pad grows the rect by the same amount on every side.
func (r Rect) Pad(by float32) Rect { return r.Inset(-by, -by) }

// Union returns the smallest rect covering both rects.
func (r Rect) Union(o Rect) Rect {
	minX := math32.Min(r.X, o.X)
	minY := math32.Min(r.Y, o.Y)
	maxX := math32.Max(r.X+r.Width, o.X+o.Width)
	maxY := math32.Max(r.Y+r.Height, o.Y+o.Height)
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// BoundsOf returns the bounding rect of a point set, padded on every side.
// The zero rect is returned for an empty set.
func BoundsOf(points []Point, pad float32) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		minX = math32.Min(minX, p.X)
		minY = math32.Min(minY, p.Y)
		maxX = math32.Max(maxX, p.X)
		maxY = math32.Max(maxY, p.Y)
	}
	return Rect{X: minX - pad, Y: minY - pad, Width: maxX - minX + 2*pad, Height: maxY - minY + 2*pad}
}
