package collab

import (
	"fmt"
	"sync"

	"coursecanvas/internal/scene"
	"coursecanvas/internal/tools"
)

// OpType enumerates the replicated operations.
type OpType string

const (
	OpInsert OpType = "insert"
	OpRemove OpType = "remove"
	OpClear  OpType = "clear"
)

// Op is one replicated change. Insert carries the full object; inserting an
// id that already exists replaces it, which is how moves, transforms and
// text edits travel.
type Op struct {
	Type     OpType      `json:"type"`
	Object   *WireObject `json:"object,omitempty"`
	TargetID string      `json:"targetId,omitempty"`
	Site     string      `json:"site"`
	Lamport  uint64      `json:"lamport"`
}

// Key is the op's dedupe identity.
func (o Op) Key() string { return fmt.Sprintf("%s-%d", o.Site, o.Lamport) }

// WireObject is the serialized form of a scene object.
type WireObject struct {
	ID    string       `json:"id"`
	Kind  scene.Kind   `json:"kind"`
	Path  *scene.Path  `json:"path,omitempty"`
	Text  *scene.Text  `json:"text,omitempty"`
	Shape *scene.Shape `json:"shape,omitempty"`
	Table *scene.Table `json:"table,omitempty"`
}

// EncodeObject serializes a scene object for the wire.
func EncodeObject(obj scene.Object) (*WireObject, error) {
	w := &WireObject{ID: obj.ID(), Kind: obj.Kind()}
	switch t := obj.(type) {
	case *scene.Path:
		w.Path = t
	case *scene.Text:
		w.Text = t
	case *scene.Shape:
		w.Shape = t
	case *scene.Table:
		w.Table = t
	default:
		return nil, fmt.Errorf("unknown object kind %q", obj.Kind())
	}
	return w, nil
}

// DecodeObject rebuilds the scene object under its original id.
func (w *WireObject) DecodeObject() (scene.Object, error) {
	switch w.Kind {
	case scene.KindPath:
		if w.Path == nil {
			return nil, fmt.Errorf("path op without payload")
		}
		return scene.RestorePath(w.ID, *w.Path), nil
	case scene.KindText:
		if w.Text == nil {
			return nil, fmt.Errorf("text op without payload")
		}
		return scene.RestoreText(w.ID, *w.Text), nil
	case scene.KindShape:
		if w.Shape == nil {
			return nil, fmt.Errorf("shape op without payload")
		}
		return scene.RestoreShape(w.ID, *w.Shape), nil
	case scene.KindTable:
		if w.Table == nil {
			return nil, fmt.Errorf("table op without payload")
		}
		return scene.RestoreTable(w.ID, *w.Table), nil
	default:
		return nil, fmt.Errorf("unknown wire kind %q", w.Kind)
	}
}

// FromChange converts a committed engine change into an unstamped op.
func FromChange(c tools.Change) (Op, error) {
	switch c.Kind {
	case tools.ChangeInsert:
		w, err := EncodeObject(c.Object)
		if err != nil {
			return Op{}, err
		}
		return Op{Type: OpInsert, Object: w}, nil
	case tools.ChangeRemove:
		return Op{Type: OpRemove, TargetID: c.TargetID}, nil
	case tools.ChangeClear:
		return Op{Type: OpClear}, nil
	default:
		return Op{}, fmt.Errorf("unknown change kind %q", c.Kind)
	}
}

// ToChange converts a remote op into an engine change.
func (o Op) ToChange() (tools.Change, error) {
	switch o.Type {
	case OpInsert:
		if o.Object == nil {
			return tools.Change{}, fmt.Errorf("insert op without object")
		}
		obj, err := o.Object.DecodeObject()
		if err != nil {
			return tools.Change{}, err
		}
		return tools.Change{Kind: tools.ChangeInsert, Object: obj}, nil
	case OpRemove:
		return tools.Change{Kind: tools.ChangeRemove, TargetID: o.TargetID}, nil
	case OpClear:
		return tools.Change{Kind: tools.ChangeClear}, nil
	default:
		return tools.Change{}, fmt.Errorf("unknown op type %q", o.Type)
	}
}

// Log tracks seen ops so replayed or relayed duplicates apply once.
type Log struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewLog() *Log { return &Log{seen: make(map[string]struct{})} }

// Admit records the op and reports whether it was new.
func (l *Log) Admit(op Op) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	key := op.Key()
	if _, ok := l.seen[key]; ok {
		return false
	}
	l.seen[key] = struct{}{}
	return true
}
