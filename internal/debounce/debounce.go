package debounce

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period for text-filter input.
const DefaultDelay = 150 * time.Millisecond

// Debouncer coalesces bursts of Notify calls: only the last value is applied, once no new
// value has arrived for the delay.
type Debouncer struct {
	delay time.Duration
	apply func(string)

	mu      sync.Mutex
	timer   *time.Timer
	gen     uint64
	pending bool
	value   string
	closed  bool
}

// New returns a Debouncer calling apply on the timer goroutine. A non-positive delay uses
// DefaultDelay.
func New(delay time.Duration, apply func(string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay, apply: apply}
}

// Notify records v as the pending value and restarts the quiet period.
func (d *Debouncer) Notify(v string) {
	if d == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.pending = true
	d.value = v
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
	}
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.onTimer(gen) })
}

// Pending returns the value waiting for the quiet period, if any.
func (d *Debouncer) Pending() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value, d.pending
}

// Take cancels the timer and hands the pending value to the caller instead of apply.
func (d *Debouncer) Take() (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	v, ok := d.value, d.pending
	d.pending = false
	d.value = ""
	return v, ok
}

// Close drops any pending value. Notify is ignored afterwards.
func (d *Debouncer) Close() {
	if d == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
}

// onTimer applies the pending value unless a later Notify has restarted the quiet period.
func (d *Debouncer) onTimer(gen uint64) {
	d.mu.Lock()
	if d.closed || !d.pending || gen != d.gen {
		d.mu.Unlock()
		return
	}
	v := d.value
	d.pending = false
	d.value = ""
	d.mu.Unlock()

	d.apply(v)
}
