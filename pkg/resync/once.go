package resync

import (
	"sync"
	"sync/atomic"
)

// Once is like sync.Once but can be reset so that the next call to Do runs the function again.
// Singletons (config, logger, clock) use it to be reinitialized between tests.
type Once struct {
	mu   sync.Mutex
	done atomic.Bool
}

// Do calls f only if Do was never called since the creation or the last Reset.
func (o *Once) Do(f func()) {
	if o.done.Load() {
		return
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.done.Load() {
		defer o.done.Store(true)
		f()
	}
}

// Reset forgets any previous call to Do.
func (o *Once) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.done.Store(false)
}
