// Package tools implements the interaction core of the create surface: the
// tool state machine, the pointer/keyboard router, and the seven tools that
// interpret input into scene mutations.
package tools

import (
	"log/slog"

	"coursecanvas/internal/geom"
	"coursecanvas/internal/scene"
)

// Name identifies a tool variant. The set is closed: new tools are new
// variants registered on the manager, not subclasses.
type Name string

const (
	ToolPen       Name = "pen"
	ToolText      Name = "text"
	ToolSelection Name = "selection"
	ToolBrush     Name = "brush"
	ToolShapes    Name = "shapes"
	ToolEraser    Name = "eraser"
	ToolTables    Name = "tables"
)

// Modifiers are the modifier keys held during an event.
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
}

// PointerEvent is a pointer callback payload in canvas space. Target is the
// topmost object under the pointer, resolved by the router only for
// pointer-down events of tools that want target resolution; it is nil
// otherwise.
type PointerEvent struct {
	Point       geom.Point
	Target      scene.Object
	Mods        Modifiers
	DoubleClick bool
}

// Key names the non-rune keys the engine understands. Printable input
// arrives as KeyEvent.Rune with Key == "".
type Key string

const (
	KeyLeft      Key = "Left"
	KeyRight     Key = "Right"
	KeyUp        Key = "Up"
	KeyDown      Key = "Down"
	KeyHome      Key = "Home"
	KeyEnd       Key = "End"
	KeyEnter     Key = "Enter"
	KeyEscape    Key = "Escape"
	KeyBackspace Key = "Backspace"
	KeyDelete    Key = "Delete"
	KeyTab       Key = "Tab"
)

// KeyEvent is a keyboard callback payload.
type KeyEvent struct {
	Key  Key
	Rune rune
	Mods Modifiers
}

// Tool is one mutually exclusive interaction mode. Exactly one tool is
// active at a time; Deactivate must release any in-progress gesture so no
// object is left geometrically inconsistent.
type Tool interface {
	Name() Name
	Activate()
	Deactivate()
	// WantsTarget tells the router whether to hit-test pointer-down events
	// for this tool.
	WantsTarget() bool
	PointerDown(ev PointerEvent)
	PointerMove(ev PointerEvent)
	PointerUp(ev PointerEvent)
	Key(ev KeyEvent)
}

// ChangeKind classifies a committed scene mutation.
type ChangeKind string

const (
	ChangeInsert ChangeKind = "insert"
	ChangeRemove ChangeKind = "remove"
	ChangeClear  ChangeKind = "clear"
)

// Change describes a committed gesture result, handed to collaborators
// (sync, persistence) after the gesture completes. Object is a deep copy.
type Change struct {
	Kind     ChangeKind
	Object   scene.Object
	TargetID string
}

// Env is the shared environment the manager hands each tool: the store,
// the layout's content bounds, the tool's own settings, the commit sink,
// and the cross-tool text-edit request. Tools never call into each other
// directly.
type Env struct {
	Store    *scene.Store
	Content  func() geom.Rect
	Settings func(Name) Settings
	Commit   func(Change)
	// RequestTextEdit asks the manager to switch to the text tool and
	// activate the given text area. Used by the selection tool.
	RequestTextEdit func(id string) bool
	Log             *slog.Logger
}

func (e *Env) commit(c Change) {
	if e.Commit != nil {
		e.Commit(c)
	}
}

func (e *Env) settings(n Name) Settings {
	if e.Settings != nil {
		return e.Settings(n)
	}
	return DefaultSettings(n)
}
