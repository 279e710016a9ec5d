// Package watch collapses bursts of page-mutation notifications into
// single scan triggers. The page runtime reports every structural change;
// the monitor waits for a quiet period measured from the most recent
// notification before letting one scan through.
package watch

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

// Monitor debounces mutation notifications into scan runs.
type Monitor struct {
	debounced func(func())
	scan      func()

	mu      sync.Mutex
	stopped bool
}

// New creates a monitor that calls scan once per burst, after window of
// quiet. No notifications means no scans.
func New(window time.Duration, scan func()) *Monitor {
	return &Monitor{
		debounced: debounce.New(window),
		scan:      scan,
	}
}

// Notify reports one structural mutation. Each call re-arms the quiet
// period.
func (m *Monitor) Notify() {
	m.mu.Lock()
	stopped := m.stopped
	m.mu.Unlock()
	if stopped {
		return
	}

	m.debounced(m.fire)
}

func (m *Monitor) fire() {
	m.mu.Lock()
	stopped := m.stopped
	m.mu.Unlock()
	if stopped {
		return
	}

	m.scan()
}

// Stop tears the monitor down: notifications received afterwards have no
// effect, including one already pending in the debounce window.
func (m *Monitor) Stop() {
	m.mu.Lock()
	m.stopped = true
	m.mu.Unlock()
}
