package pkg

import (
	"sync"
	"time"
)

// DefaultDebounce is the delay applied to search input before a list
// request is issued.
const DefaultDebounce = 500 * time.Millisecond

// Debouncer commits a raw value downstream only after it has been stable
// for the configured delay. Each new value restarts the delay, so a rapid
// sequence of updates produces a single commit of the last value.
//
// Debouncer is purely time-driven and safe for concurrent use. Stop must
// be called when the debouncer is no longer needed.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	timer   *time.Timer
	stopped bool
	commit  func(string)
	pending string
	dirty   bool
}

// NewDebouncer creates a Debouncer that invokes commit with each settled
// value. A non-positive delay falls back to DefaultDebounce.
func NewDebouncer(delay time.Duration, commit func(string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay, commit: commit}
}

// Update feeds a new raw value, restarting the delay window.
func (d *Debouncer) Update(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}
	d.pending = value
	d.dirty = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

// Flush commits a pending value immediately instead of waiting out the
// delay. A no-op when nothing is pending.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.mu.Unlock()
	d.fire()
}

// fire commits the pending value at most once; a flush and an expired
// timer racing each other leave the other side nothing to commit.
func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped || !d.dirty {
		d.mu.Unlock()
		return
	}
	value := d.pending
	d.dirty = false
	d.mu.Unlock()

	d.commit(value)
}

// Stop cancels any pending commit. The debouncer ignores further updates.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
