// Package notice implements a transient, self-dismissing notice.
//
// A Notifier is either Hidden or Visible. Raise shows it and (re)arms a
// single auto-dismiss timer; raising again while visible restarts the timer
// instead of stacking a second notice. Dismiss hides it at once.
package notice

import (
	"sync"
	"time"
)

// DefaultDuration is how long a raised notice stays visible.
const DefaultDuration = 2500 * time.Millisecond

// State is the visibility of a Notifier.
type State int

// Notifier states.
const (
	Hidden State = iota
	Visible
)

// String returns "hidden" or "visible".
func (s State) String() string {
	if s == Visible {
		return "visible"
	}
	return "hidden"
}

// timer is the part of *time.Timer the notifier needs.
type timer interface {
	Stop() bool
}

// Option configures a Notifier.
type Option func(*Notifier)

// WithDuration sets the auto-dismiss delay. Non-positive values are ignored.
func WithDuration(d time.Duration) Option {
	return func(n *Notifier) {
		if d > 0 {
			n.duration = d
		}
	}
}

// WithOnShow sets a callback run on each Hidden to Visible transition.
func WithOnShow(fn func()) Option {
	return func(n *Notifier) { n.onShow = fn }
}

// WithOnHide sets a callback run on each Visible to Hidden transition,
// whether by timeout or Dismiss.
func WithOnHide(fn func()) Option {
	return func(n *Notifier) { n.onHide = fn }
}

// Notifier is safe for concurrent use. Callbacks run outside its lock.
type Notifier struct {
	mu       sync.Mutex
	state    State
	duration time.Duration
	timer    timer
	gen      uint64 // bumped on every arm and dismiss; stale timer fires compare against it

	onShow func()
	onHide func()

	afterFunc func(time.Duration, func()) timer
}

// New creates a hidden Notifier.
func New(opts ...Option) *Notifier {
	n := &Notifier{
		duration: DefaultDuration,
		afterFunc: func(d time.Duration, f func()) timer {
			return time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Raise makes the notice visible and restarts the dismiss timer.
func (n *Notifier) Raise() {
	n.mu.Lock()
	if n.timer != nil {
		n.timer.Stop()
	}
	n.gen++
	gen := n.gen
	shown := n.state == Hidden
	n.state = Visible
	n.timer = n.afterFunc(n.duration, func() { n.expire(gen) })
	onShow := n.onShow
	n.mu.Unlock()

	if shown && onShow != nil {
		onShow()
	}
}

// Dismiss hides the notice now. No-op when already hidden.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	if n.state == Hidden {
		n.mu.Unlock()
		return
	}
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
	n.gen++
	n.state = Hidden
	onHide := n.onHide
	n.mu.Unlock()

	if onHide != nil {
		onHide()
	}
}

// expire is the timer callback for the arm identified by gen.
func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	if gen != n.gen || n.state == Hidden {
		n.mu.Unlock()
		return
	}
	n.state = Hidden
	n.timer = nil
	onHide := n.onHide
	n.mu.Unlock()

	if onHide != nil {
		onHide()
	}
}

// State returns the current state.
func (n *Notifier) State() State {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Visible reports whether the notice is showing.
func (n *Notifier) Visible() bool {
	return n.State() == Visible
}
