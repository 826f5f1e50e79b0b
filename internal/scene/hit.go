package scene

import "coursecanvas/internal/geom"

// TopmostAt returns the topmost object under p, or nil. Overlay visuals are
// never in the store, so they can never be returned here.
func (s *Store) TopmostAt(p geom.Point) Object {
	for i := len(s.objects) - 1; i >= 0; i-- {
		if s.objects[i].Hit(p) {
			return s.objects[i]
		}
	}
	return nil
}
