package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromCornersNormalizes(t *testing.T) {
	r := FromCorners(Pt(10, 20), Pt(4, 2))
	assert.Equal(t, Rect{X: 4, Y: 2, Width: 6, Height: 18}, r)
}

func TestContainsIncludesEdges(t *testing.T) {
	r := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	assert.True(t, r.Contains(Pt(0, 0)))
	assert.True(t, r.Contains(Pt(10, 10)))
	assert.True(t, r.Contains(Pt(5, 5)))
	assert.False(t, r.Contains(Pt(10.5, 5)))
	assert.False(t, r.Contains(Pt(-0.5, 5)))
}

func TestOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	assert.True(t, a.Overlaps(Rect{X: 5, Y: 5, Width: 10, Height: 10}))
	assert.True(t, a.Overlaps(Rect{X: 10, Y: 0, Width: 10, Height: 10}), "shared edge counts")
	assert.False(t, a.Overlaps(Rect{X: 11, Y: 0, Width: 10, Height: 10}))
	assert.False(t, a.Overlaps(Rect{X: 0, Y: 20, Width: 5, Height: 5}))
}

func TestTranslateKeepsSize(t *testing.T) {
	r := Rect{X: 1, Y: 2, Width: 3, Height: 4}.Translate(Pt(10, -2))
	assert.Equal(t, Rect{X: 11, Y: 0, Width: 3, Height: 4}, r)
}

func TestUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 20, Y: 5, Width: 5, Height: 10}
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 25, Height: 15}, a.Union(b))
}

func TestBoundsOf(t *testing.T) {
	pts := []Point{Pt(10, 5), Pt(-2, 8), Pt(4, 30)}
	assert.Equal(t, Rect{X: -4, Y: 3, Width: 16, Height: 29}, BoundsOf(pts, 2))
	assert.Equal(t, Rect{}, BoundsOf(nil, 5))
}

func TestDist(t *testing.T) {
	assert.InDelta(t, 5, Pt(0, 0).Dist(Pt(3, 4)), 1e-5)
}
