// Package collab synchronizes committed canvas changes between co-authors
// on the local network: lamport-stamped ops over websocket, with the host
// discovered via mDNS. The engine hands ops over after a gesture commits
// and never blocks on the network.
package collab

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// Clock is the session's lamport clock.
type Clock struct {
	counter atomic.Uint64
}

// Tick advances the clock and returns the new value.
func (c *Clock) Tick() uint64 { return c.counter.Add(1) }

// Observe merges a remote timestamp so later local ticks order after it.
func (c *Clock) Observe(t uint64) {
	for {
		cur := c.counter.Load()
		if t <= cur || c.counter.CompareAndSwap(cur, t) {
			return
		}
	}
}

// Session identifies this author: a random site id plus the clock that
// stamps every locally originated op.
type Session struct {
	Site  string
	clock Clock
}

func NewSession() *Session {
	return &Session{Site: uuid.NewString()}
}

// Stamp assigns the op its site and lamport timestamp.
func (s *Session) Stamp(op Op) Op {
	op.Site = s.Site
	op.Lamport = s.clock.Tick()
	return op
}

// Observe feeds a remote op's timestamp into the local clock.
func (s *Session) Observe(op Op) { s.clock.Observe(op.Lamport) }
