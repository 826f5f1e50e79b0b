package scene

import (
	"coursecanvas/internal/geom"
	"coursecanvas/internal/textedit"
)

// TextStyle is the cosmetic state of a text area.
type TextStyle struct {
	FontFamily string  `json:"fontFamily"`
	FontSize   float32 `json:"fontSize"`
	Color      string  `json:"color"`
}

// Text is an editable text area. Activation (accepting keyboard edits) is a
// flag on the object; the store enforces that at most one text area is
// active at a time, so callers must go through Store.ActivateText rather
// than flip Active directly.
type Text struct {
	id     string
	Rect   geom.Rect       `json:"rect"`
	Buffer textedit.Buffer `json:"buffer"`
	Active bool            `json:"active"`
	Style  TextStyle       `json:"style"`
}

func NewText(rect geom.Rect, style TextStyle) *Text {
	return &Text{id: newID(), Rect: rect, Style: style}
}

// RestoreText rebuilds a text area under an existing id. The active flag is
// local edit state and is never restored.
func RestoreText(id string, v Text) *Text {
	v.id = id
	v.Active = false
	return &v
}

func (t *Text) ID() string { return t.id }
func (t *Text) Kind() Kind { return KindText }

func (t *Text) Bounds() geom.Rect { return t.Rect }

func (t *Text) Translate(d geom.Point) { t.Rect = t.Rect.Translate(d) }

// Resize sets the size only; the origin stays put.
func (t *Text) Resize(w, h float32) {
	t.Rect.Width = w
	t.Rect.Height = h
}

func (t *Text) Hit(p geom.Point) bool { return t.Rect.Contains(p) }

func (t *Text) Clone() Object {
	c := *t
	c.Buffer = t.Buffer.Clone()
	return &c
}
