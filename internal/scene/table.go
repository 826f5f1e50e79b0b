package scene

import (
	"coursecanvas/internal/geom"
)

// Table is a drag-created grid. Cells are uniform; row/column resizing is
// handled by the page layout outside this engine.
type Table struct {
	id          string
	Rect        geom.Rect `json:"rect"`
	Rows        int       `json:"rows"`
	Cols        int       `json:"cols"`
	StrokeColor string    `json:"strokeColor"`
}

func NewTable(rect geom.Rect, rows, cols int, stroke string) *Table {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return &Table{id: newID(), Rect: rect, Rows: rows, Cols: cols, StrokeColor: stroke}
}

// RestoreTable rebuilds a table under an existing id.
func RestoreTable(id string, v Table) *Table {
	v.id = id
	return &v
}

func (t *Table) ID() string { return t.id }
func (t *Table) Kind() Kind { return KindTable }

func (t *Table) Bounds() geom.Rect { return t.Rect }

func (t *Table) Translate(d geom.Point) { t.Rect = t.Rect.Translate(d) }

// Resize sets the size only; the origin stays put.
func (t *Table) Resize(w, h float32) {
	t.Rect.Width = w
	t.Rect.Height = h
}

func (t *Table) Hit(p geom.Point) bool { return t.Rect.Contains(p) }

func (t *Table) Clone() Object {
	c := *t
	return &c
}
