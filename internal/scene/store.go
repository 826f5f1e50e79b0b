package scene

// Store is the authoritative, ordered collection of scene objects. Later
// objects render (and hit-test) above earlier ones. The store is not
// goroutine safe: every mutation happens on the event-dispatch thread, per
// the engine's single-threaded model.
type Store struct {
	objects  []Object
	onChange func()
}

func NewStore() *Store { return &Store{} }

// OnChange registers the redraw trigger. Only one is kept; the last caller
// wins. The callback fires after every mutation.
func (s *Store) OnChange(fn func()) { s.onChange = fn }

func (s *Store) notify() {
	if s.onChange != nil {
		s.onChange()
	}
}

// Add appends obj on top of the stack. Adding an id that already exists
// replaces the old object in place, keeping its z-order.
func (s *Store) Add(obj Object) {
	for i, o := range s.objects {
		if o.ID() == obj.ID() {
			s.objects[i] = obj
			s.notify()
			return
		}
	}
	s.objects = append(s.objects, obj)
	s.notify()
}

// Remove deletes the object with the given id, reporting whether it existed.
func (s *Store) Remove(id string) bool {
	for i, o := range s.objects {
		if o.ID() == id {
			s.objects = append(s.objects[:i], s.objects[i+1:]...)
			s.notify()
			return true
		}
	}
	return false
}

// Clear removes every object.
func (s *Store) Clear() {
	s.objects = nil
	s.notify()
}

// Get returns the object with the given id, or nil.
func (s *Store) Get(id string) Object {
	for _, o := range s.objects {
		if o.ID() == id {
			return o
		}
	}
	return nil
}

// All returns the objects in z-order. The slice is a copy; the objects are
// the live ones.
func (s *Store) All() []Object {
	out := make([]Object, len(s.objects))
	copy(out, s.objects)
	return out
}

func (s *Store) Len() int { return len(s.objects) }

// Texts returns every text area in z-order.
func (s *Store) Texts() []*Text {
	var out []*Text
	for _, o := range s.objects {
		if t, ok := o.(*Text); ok {
			out = append(out, t)
		}
	}
	return out
}

// ActiveText returns the text area currently accepting keyboard edits, or
// nil.
func (s *Store) ActiveText() *Text {
	for _, o := range s.objects {
		if t, ok := o.(*Text); ok && t.Active {
			return t
		}
	}
	return nil
}

// ActivateText activates the text area with the given id, deactivating any
// other. It returns the activated area, or nil if id is not a text area.
// This is the single place the one-active invariant is enforced.
func (s *Store) ActivateText(id string) *Text {
	target, _ := s.Get(id).(*Text)
	if target == nil {
		return nil
	}
	for _, t := range s.Texts() {
		if t.Active && t.ID() != id {
			t.Active = false
		}
	}
	target.Active = true
	s.notify()
	return target
}

// DeactivateText clears the active flag on whichever text area holds it.
func (s *Store) DeactivateText() {
	if t := s.ActiveText(); t != nil {
		t.Active = false
		s.notify()
	}
}

// Changed fires the redraw trigger for in-place object edits the store
// cannot observe itself (drags, text input).
func (s *Store) Changed() { s.notify() }

// Snapshot returns deep copies of every object, safe to hand to
// collaborators off the event thread.
func (s *Store) Snapshot() []Object {
	out := make([]Object, len(s.objects))
	for i, o := range s.objects {
		out[i] = o.Clone()
	}
	return out
}
