// Package timing provides scoped execution-time accumulation for the
// pipeline's named operations.
package timing

import (
	"sync"
	"time"
)

// defaultOperations are pre-registered with a zero total so Timings()
// always reports them even before they've run once.
var defaultOperations = []string{
	"cache_prebuild", "complexity", "filechurn", "hotspot", "ownership", "sharedownership",
}

// Tracker accumulates elapsed time per named operation. Safe for
// concurrent use. Grounded on original_source/src/app/timing_tracker.py.
type Tracker struct {
	mu      sync.Mutex
	timings map[string]time.Duration
}

// New builds a Tracker with the default operation set pre-registered at
// zero.
func New() *Tracker {
	t := &Tracker{timings: make(map[string]time.Duration)}
	for _, op := range defaultOperations {
		t.timings[op] = 0
	}
	return t
}

// Track runs fn, adding its elapsed wall-clock time to op's running total
// whether or not fn panics. The total is updated in a deferred call, so a
// panic inside fn is still timed and then propagates to the caller.
func (t *Tracker) Track(op string, fn func()) {
	start := time.Now()
	defer func() {
		elapsed := time.Since(start)
		t.mu.Lock()
		t.timings[op] += elapsed
		t.mu.Unlock()
	}()
	fn()
}

// Timings returns a defensive copy of the accumulated totals.
func (t *Tracker) Timings() map[string]time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]time.Duration, len(t.timings))
	for k, v := range t.timings {
		out[k] = v
	}
	return out
}

// Reset zeroes every operation's accumulated time.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for k := range t.timings {
		t.timings[k] = 0
	}
}
