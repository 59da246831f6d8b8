package bus

import (
	"sync"
	"sync/atomic"
	"weak"
)

// Target is a liveness-checkable handle to the object that owns a
// subscription. The bus never keeps the object alive; once it has been
// collected, dispatch skips the subscription.
//
// The zero Target has no owner and stays live until the subscription is
// disposed explicitly.
type Target struct {
	alive func() bool
}

// TargetOf returns a Target that observes p through a weak pointer.
// A nil p yields the zero Target.
//
// The completion registered with the target is held strongly, so a
// completion that captures p keeps p reachable and the subscription never
// goes inert. Completions that need their owner should use
// SubscribeEventFor or SubscribeDataFor instead.
func TargetOf[T any](p *T) Target {
	if p == nil {
		return Target{}
	}
	return weakTarget(weak.Make(p))
}

// Alive reports whether the owner is still reachable.
func (t Target) Alive() bool {
	return t.alive == nil || t.alive()
}

// Subscription is the disposer returned by every subscribe call.
type Subscription struct {
	bus      *Bus
	channel  channel
	ids      []string
	disposed atomic.Bool
}

type channel int

const (
	eventChannel channel = iota
	dataChannel
)

// Dispose removes the subscription. It takes effect immediately, including
// for a dispatch already in progress, and is safe to call more than once.
func (s *Subscription) Dispose() {
	if s == nil {
		return
	}
	if s.disposed.CompareAndSwap(false, true) {
		s.bus.remove(s)
	}
}

// Disposed reports whether Dispose has been called.
func (s *Subscription) Disposed() bool {
	return s.disposed.Load()
}

// IDs returns the event or data identifiers this subscription covers.
func (s *Subscription) IDs() []string {
	return append([]string(nil), s.ids...)
}

type eventEntry struct {
	sub    *Subscription
	target Target
	fn     func(payload any)
}

type dataEntry struct {
	sub    *Subscription
	target Target
	fn     func(value any)
	empty  func()

	mu         sync.Mutex
	delivering bool
	seen       bool
	last       uint64
	pending    *update
}

// update is one state of a shared-data id. seq orders updates on a bus;
// a nil value is the empty state.
type update struct {
	value any
	seq   uint64
}

func (e *eventEntry) live() bool { return !e.sub.Disposed() && e.target.Alive() }
func (e *dataEntry) live() bool  { return !e.sub.Disposed() && e.target.Alive() }
