// Package scene owns the flat, ordered collection of drawable objects on a
// canvas: vector paths, text areas, shapes and tables. All mutation happens
// on the single event-dispatch thread; collaborators that need the scene off
// that thread get immutable snapshots via Clone/Snapshot.
package scene

import (
	"github.com/google/uuid"

	"coursecanvas/internal/geom"
)

// Kind discriminates the object union.
type Kind string

const (
	KindPath  Kind = "path"
	KindText  Kind = "text"
	KindShape Kind = "shape"
	KindTable Kind = "table"
)

// Object is one drawable item in the store. Overlay visuals (selection
// outlines, transform handles) are not Objects; they never enter the store
// and therefore can never be hit.
type Object interface {
	// ID is the stable identity of the object, assigned at creation.
	ID() string
	Kind() Kind
	// Bounds is the object's axis-aligned bounding rect in canvas space.
	Bounds() geom.Rect
	// Translate moves the object by d. It is the only transform shared by
	// every kind; everything else (resize, corner radius) is kind-specific
	// and must leave the origin alone.
	Translate(d geom.Point)
	// Hit reports whether p picks this object.
	Hit(p geom.Point) bool
	// Clone returns a deep copy sharing no mutable state.
	Clone() Object
}

func newID() string { return uuid.NewString() }
