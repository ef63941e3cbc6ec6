package watch

import (
	"log/slog"
	"sync"
	"time"

	"k8s.io/apimachinery/pkg/util/sets"
)

// Debouncer coalesces rapid events into a single callback invocation. The
// callback receives every distinct path seen since the previous invocation,
// sorted. Invocations never overlap.
type Debouncer struct {
	interval time.Duration
	callback func(paths []string)
	logger   *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending sets.Set[string]
	stopped bool

	running sync.Mutex
}

// NewDebouncer creates a debouncer that waits for interval of quiet before
// firing callback.
func NewDebouncer(interval time.Duration, callback func(paths []string)) *Debouncer {
	return &Debouncer{
		interval: interval,
		callback: callback,
		logger:   slog.Default(),
		pending:  sets.New[string](),
	}
}

// Trigger records an event for path and restarts the quiet period.
func (d *Debouncer) Trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending.Insert(path)

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.interval, d.fire)
}

func (d *Debouncer) fire() {
	d.running.Lock()
	defer d.running.Unlock()

	d.mu.Lock()
	if d.stopped || d.pending.Len() == 0 {
		d.mu.Unlock()
		return
	}

	paths := sets.List(d.pending)
	d.pending = sets.New[string]()
	d.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("debounced callback panicked", slog.Any("error", r))
		}
	}()

	d.callback(paths)
}

// Stop cancels any pending callback. Further triggers are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	d.pending = sets.New[string]()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
