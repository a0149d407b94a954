package validator

import (
	"sort"
	"sync"
	"time"
)

// DefaultDebounce is the window used when none is configured.
const DefaultDebounce = 300 * time.Millisecond

type pendingTask struct {
	timer *time.Timer
	run   func()
}

// Debouncer schedules one task per key. Scheduling a key that already has a
// pending task cancels it, so only the latest request for a key ever runs.
// Cancelling never rolls anything back: a task mutates nothing until it runs.
type Debouncer struct {
	window  time.Duration
	mu      sync.Mutex
	pending map[string]*pendingTask
	stopped bool
}

// NewDebouncer creates a Debouncer. A window of zero or less runs tasks inline.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{
		window:  window,
		pending: make(map[string]*pendingTask),
	}
}

// Window returns the debounce delay.
func (d *Debouncer) Window() time.Duration {
	return d.window
}

// Schedule runs task after the window unless superseded. It reports false when
// the debouncer has been stopped.
func (d *Debouncer) Schedule(key string, task func()) bool {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return false
	}
	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
		delete(d.pending, key)
	}
	if d.window <= 0 {
		d.mu.Unlock()
		task()
		return true
	}

	p := &pendingTask{run: task}
	p.timer = time.AfterFunc(d.window, func() {
		d.mu.Lock()
		// A superseded timer may fire after Stop returned false; only the
		// task still registered for the key is allowed to run.
		if d.pending[key] != p {
			d.mu.Unlock()
			return
		}
		delete(d.pending, key)
		d.mu.Unlock()
		p.run()
	})
	d.pending[key] = p
	d.mu.Unlock()
	return true
}

// Cancel drops the pending task for key. It reports whether one was pending.
func (d *Debouncer) Cancel(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.pending[key]
	if !ok {
		return false
	}
	p.timer.Stop()
	delete(d.pending, key)
	return true
}

// CancelAll drops every pending task.
func (d *Debouncer) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for key, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, key)
	}
}

// Pending returns the number of tasks waiting to run.
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Flush runs every pending task immediately, in key order, on the calling
// goroutine.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	keys := make([]string, 0, len(d.pending))
	for key := range d.pending {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	tasks := make([]func(), 0, len(keys))
	for _, key := range keys {
		p := d.pending[key]
		p.timer.Stop()
		delete(d.pending, key)
		tasks = append(tasks, p.run)
	}
	d.mu.Unlock()

	for _, task := range tasks {
		task()
	}
}

// Stop cancels pending tasks and rejects new ones.
func (d *Debouncer) Stop() {
	d.CancelAll()
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()
}
