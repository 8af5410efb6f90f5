// Package debounce provides a single-slot cancellable timer: every Trigger
// resets the pending timer, so only the last call within a quiet window
// actually runs its callback.
package debounce

import (
	"sync"
	"time"
)

type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	timer  *time.Timer
}

func New(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Trigger schedules fn to run after the quiet window, replacing any
// previously scheduled callback that has not fired yet.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, fn)
}

// Stop cancels the pending callback, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
