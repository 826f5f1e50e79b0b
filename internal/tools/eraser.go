package tools

import "coursecanvas/internal/scene"

// Eraser removes every object hit while the pointer is down. Pointer-down
// targets come pre-resolved from the router; mid-drag hits are resolved
// here because moves are not hit-tested by the router.
type Eraser struct {
	env     *Env
	erasing bool
}

func NewEraser(env *Env) *Eraser { return &Eraser{env: env} }

func (e *Eraser) Name() Name        { return ToolEraser }
func (e *Eraser) Activate()         {}
func (e *Eraser) Deactivate()       { e.erasing = false }
func (e *Eraser) WantsTarget() bool { return true }

func (e *Eraser) PointerDown(ev PointerEvent) {
	e.erasing = true
	e.erase(ev.Target)
}

func (e *Eraser) PointerMove(ev PointerEvent) {
	if !e.erasing {
		return
	}
	e.erase(e.env.Store.TopmostAt(ev.Point))
}

func (e *Eraser) PointerUp(PointerEvent) { e.erasing = false }

func (e *Eraser) Key(KeyEvent) {}

func (e *Eraser) erase(obj scene.Object) {
	if obj == nil {
		return
	}
	if e.env.Store.Remove(obj.ID()) {
		e.env.commit(Change{Kind: ChangeRemove, TargetID: obj.ID()})
	}
}
