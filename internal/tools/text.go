package tools

import (
	"coursecanvas/internal/geom"
	"coursecanvas/internal/scene"
)

// MinTextDragSize is the smallest drag rectangle (per axis) that creates a
// text area; anything smaller creates nothing.
const MinTextDragSize = float32(20)

// TextAreaTool creates text areas by drag and edits the single active one.
// Each text area moves between Created-Inactive and Active; at most one is
// Active across the whole store (enforced by the store). Keyboard input
// with no active area is accepted and silently discarded.
type TextAreaTool struct {
	env     *Env
	blinker *Blinker

	dragStart *geom.Point
	dragAt    geom.Point
}

func NewTextAreaTool(env *Env) *TextAreaTool {
	return &TextAreaTool{
		env:     env,
		blinker: NewBlinker(env.Store.Changed),
	}
}

func (t *TextAreaTool) Name() Name        { return ToolText }
func (t *TextAreaTool) Activate()         {}
func (t *TextAreaTool) WantsTarget() bool { return true }

// Deactivate ends any editing session and drops an unfinished creation
// drag. Deactivation never destroys the text area, it only clears the edit
// state.
func (t *TextAreaTool) Deactivate() {
	t.dragStart = nil
	t.deactivateCurrent()
}

// Blinker exposes the cursor blink state for rendering and tests.
func (t *TextAreaTool) Blinker() *Blinker { return t.blinker }

func (t *TextAreaTool) PointerDown(ev PointerEvent) {
	if target, ok := ev.Target.(*scene.Text); ok {
		if ev.DoubleClick {
			t.Edit(target.ID())
		}
		// A single click on a text area neither activates nor deactivates;
		// activation is double-click or programmatic.
		return
	}
	// Click outside all text areas: whatever was active goes inactive, and
	// a creation drag may begin.
	t.deactivateCurrent()
	start := ev.Point
	t.dragStart = &start
	t.dragAt = start
}

func (t *TextAreaTool) PointerMove(ev PointerEvent) {
	if t.dragStart != nil {
		t.dragAt = ev.Point
	}
}

func (t *TextAreaTool) PointerUp(ev PointerEvent) {
	if t.dragStart == nil {
		return
	}
	rect := geom.FromCorners(*t.dragStart, ev.Point)
	t.dragStart = nil
	if rect.Width < MinTextDragSize || rect.Height < MinTextDragSize {
		return
	}
	if !rect.Overlaps(t.env.Content()) {
		// Wholly outside the content area creates nothing.
		return
	}
	s := t.env.settings(ToolText)
	area := scene.NewText(rect, scene.TextStyle{
		FontFamily: s.FontFamily,
		FontSize:   s.FontSize,
		Color:      s.Color,
	})
	t.env.Store.Add(area)
	t.env.Store.ActivateText(area.ID())
	t.blinker.Start()
	t.env.commit(Change{Kind: ChangeInsert, Object: area.Clone()})
}

// Edit activates the text area with the given id for keyboard editing,
// deactivating any other. The cursor starts at the end of the content.
func (t *TextAreaTool) Edit(id string) bool {
	t.deactivateCurrent()
	area := t.env.Store.ActivateText(id)
	if area == nil {
		return false
	}
	area.Buffer.SetCursor(len(area.Buffer.Text))
	t.blinker.Start()
	return true
}

func (t *TextAreaTool) deactivateCurrent() {
	t.blinker.Stop()
	area := t.env.Store.ActiveText()
	if area == nil {
		return
	}
	t.env.Store.DeactivateText()
	// Hand the finished edit to collaborators as an insert under the same
	// id, which replaces the object on the receiving side.
	t.env.commit(Change{Kind: ChangeInsert, Object: area.Clone()})
}

// Key applies the text-editing state machine to the active area. With no
// active area the event is discarded, never raised as an error.
func (t *TextAreaTool) Key(ev KeyEvent) {
	area := t.env.Store.ActiveText()
	if area == nil {
		return
	}
	buf := &area.Buffer
	switch {
	case ev.Key == KeyLeft && ev.Mods.Ctrl:
		buf.WordLeft()
	case ev.Key == KeyRight && ev.Mods.Ctrl:
		buf.WordRight()
	case ev.Key == KeyLeft:
		buf.MoveLeft()
	case ev.Key == KeyRight:
		buf.MoveRight()
	case ev.Key == KeyUp:
		buf.MoveUp()
	case ev.Key == KeyDown:
		buf.MoveDown()
	case ev.Key == KeyHome:
		buf.Home()
	case ev.Key == KeyEnd:
		buf.End()
	case ev.Key == KeyEnter:
		buf.InsertNewline()
	case ev.Key == KeyTab:
		buf.InsertTab()
	case ev.Key == KeyBackspace:
		buf.Backspace()
	case ev.Key == KeyDelete:
		buf.Delete()
	case ev.Mods.Ctrl && (ev.Rune == 'a' || ev.Rune == 'A'):
		buf.SelectAll()
	case ev.Rune != 0 && !ev.Mods.Ctrl:
		buf.Insert(string(ev.Rune))
	default:
		return
	}
	t.env.Store.Changed()
}
