package tools

import (
	"sync"
	"time"
)

// BlinkInterval is the cursor on/off period.
const BlinkInterval = 530 * time.Millisecond

// Blinker drives the text cursor's on/off state. It is a cooperative,
// cancellable ticker tied to a text area's active lifetime: Start on
// activation, Stop on deactivation, with Stop guaranteed to end the
// goroutine. Visible is queryable at any time without touching the timer
// phase, so tests never wait on the tick.
type Blinker struct {
	mu      sync.Mutex
	visible bool
	stop    chan struct{}
	onFlip  func()
}

// NewBlinker creates a stopped blinker. onFlip, if non-nil, fires after
// every visibility change so the host can redraw; it runs on the blinker
// goroutine and must not mutate the scene.
func NewBlinker(onFlip func()) *Blinker {
	return &Blinker{onFlip: onFlip}
}

// Start begins blinking with the cursor visible. Restarting resets phase.
func (b *Blinker) Start() {
	b.mu.Lock()
	if b.stop != nil {
		close(b.stop)
	}
	stop := make(chan struct{})
	b.stop = stop
	b.visible = true
	b.mu.Unlock()

	go func() {
		t := time.NewTicker(BlinkInterval)
		defer t.Stop()
		for {
			select {
			case <-stop:
				return
			case <-t.C:
				b.flip()
			}
		}
	}()
}

// Stop cancels the timer and hides the cursor. Idempotent.
func (b *Blinker) Stop() {
	b.mu.Lock()
	if b.stop != nil {
		close(b.stop)
		b.stop = nil
	}
	b.visible = false
	b.mu.Unlock()
}

// Running reports whether the blink timer is live.
func (b *Blinker) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stop != nil
}

// Visible reports the current cursor visibility.
func (b *Blinker) Visible() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.visible
}

func (b *Blinker) flip() {
	b.mu.Lock()
	if b.stop == nil {
		b.mu.Unlock()
		return
	}
	b.visible = !b.visible
	fn := b.onFlip
	b.mu.Unlock()
	if fn != nil {
		fn()
	}
}
