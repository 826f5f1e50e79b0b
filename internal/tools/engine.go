package tools

import (
	"log/slog"

	"coursecanvas/internal/geom"
	"coursecanvas/internal/scene"
)

// Engine is the facade the host application and collaborators talk to: one
// store, one tool manager, one router, plus the content bounds consumed
// from the layout collaborator. It has no rendering of its own; the host
// registers a redraw trigger on the store.
type Engine struct {
	store   *scene.Store
	manager *Manager
	router  *Router
	content func() geom.Rect
	commits []func(Change)
	log     *slog.Logger
}

// defaultContent is used until the layout collaborator provides real
// bounds.
var defaultContent = geom.Rect{Width: 1200, Height: 900}

// NewEngine builds a fully wired engine: store, the seven tools, manager
// (selection active by default) and router. view may be nil for the
// identity transform; content may be nil for the default bounds.
func NewEngine(view Viewport, content func() geom.Rect, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	if content == nil {
		content = func() geom.Rect { return defaultContent }
	}

	e := &Engine{
		store:   scene.NewStore(),
		manager: NewManager(log),
		content: content,
		log:     log,
	}

	env := &Env{
		Store:           e.store,
		Content:         e.ContentBounds,
		Settings:        func(n Name) Settings { s, _ := e.manager.Settings(n); return s },
		Commit:          e.dispatchCommit,
		RequestTextEdit: e.manager.RequestTextEdit,
		Log:             log,
	}

	e.manager.Register(NewSelectionTool(env))
	e.manager.Register(NewPen(env))
	e.manager.Register(NewBrush(env))
	e.manager.Register(NewTextAreaTool(env))
	e.manager.Register(NewShapesTool(env))
	e.manager.Register(NewTablesTool(env))
	e.manager.Register(NewEraser(env))

	e.router = NewRouter(e.manager, e.store, view, log)
	return e
}

// Store exposes the scene object store.
func (e *Engine) Store() *scene.Store { return e.store }

// Manager exposes the tool state machine.
func (e *Engine) Manager() *Manager { return e.manager }

// Router exposes the pointer/keyboard entry points for the host input
// system.
func (e *Engine) Router() *Router { return e.router }

// SetTool switches tools; false for unknown names.
func (e *Engine) SetTool(name Name) bool { return e.manager.SetTool(name) }

// ActiveTool returns the active tool name.
func (e *Engine) ActiveTool() Name { return e.manager.ActiveTool() }

// ToolSettings returns a tool's settings record.
func (e *Engine) ToolSettings(name Name) (Settings, bool) { return e.manager.Settings(name) }

// SetToolSettings merges a partial settings update for one tool.
func (e *Engine) SetToolSettings(name Name, patch SettingsPatch) bool {
	return e.manager.ApplySettings(name, patch)
}

// ContentBounds re-exposes the layout collaborator's content area.
func (e *Engine) ContentBounds() geom.Rect { return e.content() }

// AllObjects returns the scene objects in z-order.
func (e *Engine) AllObjects() []scene.Object { return e.store.All() }

// TextAreas returns every text area.
func (e *Engine) TextAreas() []*scene.Text { return e.store.Texts() }

// ActiveTextArea returns the text area accepting keyboard edits, or nil.
func (e *Engine) ActiveTextArea() *scene.Text { return e.store.ActiveText() }

// OnCommit registers a sink for committed gesture results (collab sync,
// persistence). Sinks run on the event thread and must not block; hand the
// change to a goroutine or buffered channel.
func (e *Engine) OnCommit(fn func(Change)) {
	e.commits = append(e.commits, fn)
}

// Apply performs an externally originated change (a remote collaborator's
// op) against the store. It does not re-dispatch to commit sinks.
func (e *Engine) Apply(c Change) {
	switch c.Kind {
	case ChangeInsert:
		if c.Object != nil {
			e.store.Add(c.Object)
		}
	case ChangeRemove:
		e.store.Remove(c.TargetID)
	case ChangeClear:
		e.store.Clear()
	}
}

// Clear empties the scene and tells collaborators.
func (e *Engine) Clear() {
	e.store.Clear()
	e.dispatchCommit(Change{Kind: ChangeClear})
}

func (e *Engine) dispatchCommit(c Change) {
	for _, fn := range e.commits {
		fn(c)
	}
}
