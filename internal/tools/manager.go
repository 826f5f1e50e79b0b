package tools

import "log/slog"

// textEditor is the capability the manager needs from the text tool to
// satisfy a cross-tool edit request. Kept as an interface so the selection
// tool never touches the text tool's internals.
type textEditor interface {
	Edit(id string) bool
}

// Manager owns the tool state machine: exactly one active tool, per-tool
// settings, and the observer list that keeps external status UI and the
// router synchronized on a single value. There is no "no tool" state; the
// selection tool is active from construction.
type Manager struct {
	tools     map[Name]Tool
	active    Tool
	settings  map[Name]Settings
	observers []func(Name)
	log       *slog.Logger
}

func NewManager(log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		tools:    make(map[Name]Tool),
		settings: make(map[Name]Settings),
		log:      log,
	}
}

// Register adds a tool variant. The first registered selection tool (or,
// failing that, the first tool) becomes active immediately.
func (m *Manager) Register(t Tool) {
	m.tools[t.Name()] = t
	if _, ok := m.settings[t.Name()]; !ok {
		m.settings[t.Name()] = DefaultSettings(t.Name())
	}
	if m.active == nil || (t.Name() == ToolSelection && m.active.Name() != ToolSelection) {
		if m.active != nil {
			m.active.Deactivate()
		}
		m.active = t
		t.Activate()
	}
}

// SetTool switches the active tool. Unknown names return false and leave
// the current tool untouched; no error escapes. On success the previous
// tool is deactivated (releasing any in-progress gesture), the new tool is
// activated, and every observer is notified.
func (m *Manager) SetTool(name Name) bool {
	next, ok := m.tools[name]
	if !ok {
		m.log.Warn("unknown tool", "name", string(name))
		return false
	}
	if next == m.active {
		m.notifyAll()
		return true
	}
	if m.active != nil {
		m.active.Deactivate()
	}
	m.active = next
	next.Activate()
	m.log.Debug("tool switched", "name", string(name))
	m.notifyAll()
	return true
}

// ActiveTool returns the name of the single active tool.
func (m *Manager) ActiveTool() Name {
	if m.active == nil {
		return ""
	}
	return m.active.Name()
}

func (m *Manager) activeRef() Tool { return m.active }

// Tool returns the registered variant for name, or nil.
func (m *Manager) Tool(name Name) Tool { return m.tools[name] }

// Settings returns the settings for a tool variant. Unknown names report
// ok=false with the zero record.
func (m *Manager) Settings(name Name) (Settings, bool) {
	s, ok := m.settings[name]
	return s, ok
}

// ApplySettings merges a partial update into one tool's settings, leaving
// every other tool's record untouched. Unknown names are a no-op.
func (m *Manager) ApplySettings(name Name, patch SettingsPatch) bool {
	s, ok := m.settings[name]
	if !ok {
		return false
	}
	m.settings[name] = s.apply(patch)
	return true
}

// ReplaceSettings overwrites one tool's record wholesale (used by config
// load). Unknown names are a no-op.
func (m *Manager) ReplaceSettings(name Name, s Settings) bool {
	if _, ok := m.settings[name]; !ok {
		return false
	}
	m.settings[name] = s
	return true
}

// Observe registers a callback fired with the active tool name after every
// successful SetTool.
func (m *Manager) Observe(fn func(Name)) {
	m.observers = append(m.observers, fn)
}

func (m *Manager) notifyAll() {
	name := m.ActiveTool()
	for _, fn := range m.observers {
		fn(name)
	}
}

// RequestTextEdit switches to the text tool and activates the given text
// area. This is the explicit message that resolves the selection→text
// cycle; the selection tool calls this instead of reaching into the text
// tool.
func (m *Manager) RequestTextEdit(id string) bool {
	ed, ok := m.tools[ToolText].(textEditor)
	if !ok {
		return false
	}
	if !m.SetTool(ToolText) {
		return false
	}
	return ed.Edit(id)
}
