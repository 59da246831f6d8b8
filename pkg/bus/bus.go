// Package bus implements the event and shared-data bus a container offers to
// the nodes in its subtree.
//
// A Bus has two channels that share one set of registries:
//
//   - The event channel dispatches a payload to every subscriber of an id
//     and retains nothing.
//   - The shared-data channel stores the latest value per id and notifies
//     subscribers when it changes.
//
// All dispatch is synchronous on the caller's goroutine and follows
// registration order. Subscribers are invoked outside the registry lock, so
// a completion may subscribe, dispose or publish on the same bus.
//
// Subscriptions hold their owner through a [Target]. When the owner is
// garbage collected the subscription goes inert and is pruned on a later
// dispatch:
//
//	type badge struct{ count int }
//
//	b := bus.New("FeedSection")
//	owner := &badge{}
//	sub := b.SubscribeEvent("tap", bus.TargetOf(owner), func(payload any) {
//	    log.Println("tapped", payload)
//	})
//	b.SendEvent("tap", 1)
//	sub.Dispose()
package bus

import (
	"slices"
	"sync"

	"github.com/go-drift/listkit/pkg/errors"
)

// Bus is a scoped publish/subscribe facility with a keyed value store.
type Bus struct {
	tag string

	mu       sync.RWMutex
	events   map[string][]*eventEntry
	values   map[string]any
	versions map[string]uint64
	seq      uint64
	data     map[string][]*dataEntry
}

// New creates an empty bus. tag names the owner for diagnostics only.
func New(tag string) *Bus {
	return &Bus{
		tag:      tag,
		events:   make(map[string][]*eventEntry),
		values:   make(map[string]any),
		versions: make(map[string]uint64),
		data:     make(map[string][]*dataEntry),
	}
}

// Tag returns the diagnostic tag given to New.
func (b *Bus) Tag() string {
	return b.tag
}

// SendEvent invokes every live subscriber of id with payload, in
// registration order.
func (b *Bus) SendEvent(id string, payload any) {
	b.mu.RLock()
	entries := slices.Clone(b.events[id])
	b.mu.RUnlock()

	stale := false
	for _, e := range entries {
		if !e.live() {
			stale = true
			continue
		}
		b.call("bus.SendEvent", func() { e.fn(payload) })
	}
	if stale {
		b.pruneEvents(id)
	}
}

// SubscribeEvent registers fn for id. The subscription lives until it is
// disposed or target is collected.
func (b *Bus) SubscribeEvent(id string, target Target, fn func(payload any)) *Subscription {
	sub := &Subscription{bus: b, channel: eventChannel, ids: []string{id}}
	if fn == nil {
		sub.disposed.Store(true)
		return sub
	}
	b.mu.Lock()
	b.events[id] = append(b.events[id], &eventEntry{sub: sub, target: target, fn: fn})
	b.mu.Unlock()
	return sub
}

// SubscribeEvents registers fn for every id in ids under a single lock.
// fn receives the id that fired. Disposing the result removes all of them.
func (b *Bus) SubscribeEvents(ids []string, target Target, fn func(id string, payload any)) *Subscription {
	sub := &Subscription{bus: b, channel: eventChannel, ids: slices.Clone(ids)}
	if fn == nil || len(ids) == 0 {
		sub.disposed.Store(true)
		return sub
	}
	b.mu.Lock()
	for _, id := range ids {
		b.events[id] = append(b.events[id], &eventEntry{
			sub:    sub,
			target: target,
			fn:     func(payload any) { fn(id, payload) },
		})
	}
	b.mu.Unlock()
	return sub
}

// ShareData stores value under id and notifies the id's subscribers.
// An untyped nil clears the entry and fires the subscribers' empty
// callbacks. A typed nil such as (*T)(nil) is an ordinary value: it is
// stored and delivered to the completions.
func (b *Bus) ShareData(value any, id string) {
	b.shareData(value, id, true)
}

// ShareDataQuietly stores value under id without notifying subscribers.
func (b *Bus) ShareDataQuietly(value any, id string) {
	b.shareData(value, id, false)
}

// ClearData removes the value under id and broadcasts the empty state.
func (b *Bus) ClearData(id string) {
	b.shareData(nil, id, true)
}

func (b *Bus) shareData(value any, id string, broadcast bool) {
	b.mu.Lock()
	if value == nil {
		delete(b.values, id)
	} else {
		b.values[id] = value
	}
	b.seq++
	b.versions[id] = b.seq
	u := update{value: value, seq: b.seq}
	var entries []*dataEntry
	if broadcast {
		entries = slices.Clone(b.data[id])
	}
	b.mu.Unlock()

	if !broadcast {
		return
	}
	stale := false
	for _, e := range entries {
		if !e.live() {
			stale = true
			continue
		}
		b.deliver(e, u)
	}
	if stale {
		b.pruneData(id)
	}
}

// SharedData returns the value stored under id.
func (b *Bus) SharedData(id string) (any, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.values[id]
	return v, ok
}

// SharedDataOr returns the value stored under id, or def when there is none.
// def is not stored.
func (b *Bus) SharedDataOr(id string, def any) any {
	if v, ok := b.SharedData(id); ok {
		return v
	}
	return def
}

// SubscribeData registers fn for future ShareData broadcasts on id and
// immediately replays the current state: fn with the stored value, or
// empty when nothing is stored. empty may be nil.
//
// Deliveries to one subscription never go backwards: a replay that loses a
// race with a newer broadcast is dropped, so the last value a subscriber
// observes is the one SharedData returns.
func (b *Bus) SubscribeData(id string, target Target, fn func(value any), empty func()) *Subscription {
	sub := &Subscription{bus: b, channel: dataChannel, ids: []string{id}}
	if fn == nil && empty == nil {
		sub.disposed.Store(true)
		return sub
	}
	e := &dataEntry{sub: sub, target: target, fn: fn, empty: empty}

	b.mu.Lock()
	b.data[id] = append(b.data[id], e)
	u := update{value: b.values[id], seq: b.versions[id]}
	b.mu.Unlock()

	b.deliver(e, u)
	return sub
}

// Stats describes the registries for diagnostics.
type Stats struct {
	Tag              string
	EventIDs         int
	DataIDs          int
	StoredValues     int
	EventSubscribers int
	DataSubscribers  int
	StaleSubscribers int
}

// Stats returns a point-in-time summary of the bus registries.
func (b *Bus) Stats() Stats {
	b.mu.RLock()
	defer b.mu.RUnlock()
	s := Stats{
		Tag:          b.tag,
		EventIDs:     len(b.events),
		DataIDs:      len(b.data),
		StoredValues: len(b.values),
	}
	for _, entries := range b.events {
		for _, e := range entries {
			if e.live() {
				s.EventSubscribers++
			} else {
				s.StaleSubscribers++
			}
		}
	}
	for _, entries := range b.data {
		for _, e := range entries {
			if e.live() {
				s.DataSubscribers++
			} else {
				s.StaleSubscribers++
			}
		}
	}
	return s
}

// deliver hands u to e unless e has already seen a newer update. At most
// one goroutine delivers to an entry at a time; updates offered meanwhile
// are coalesced to the newest and delivered by that goroutine when its
// current callback returns.
func (b *Bus) deliver(e *dataEntry, u update) {
	e.mu.Lock()
	if (e.seen && u.seq <= e.last) || (e.pending != nil && u.seq <= e.pending.seq) {
		e.mu.Unlock()
		return
	}
	e.pending = &u
	if e.delivering {
		e.mu.Unlock()
		return
	}
	e.delivering = true
	for e.pending != nil {
		next := *e.pending
		e.pending = nil
		e.last, e.seen = next.seq, true
		e.mu.Unlock()

		if e.live() {
			b.invoke(e, next.value)
		}

		e.mu.Lock()
	}
	e.delivering = false
	e.mu.Unlock()
}

func (b *Bus) invoke(e *dataEntry, value any) {
	if value == nil {
		if e.empty != nil {
			b.call("bus.ShareData", e.empty)
		}
		return
	}
	if e.fn != nil {
		b.call("bus.ShareData", func() { e.fn(value) })
	}
}

// call runs one subscriber so that a panic in it does not stop the dispatch.
func (b *Bus) call(op string, fn func()) {
	errors.Guard(op+"["+b.tag+"]", fn)
}

func (b *Bus) remove(sub *Subscription) {
	switch sub.channel {
	case eventChannel:
		for _, id := range sub.ids {
			b.pruneEvents(id)
		}
	case dataChannel:
		for _, id := range sub.ids {
			b.pruneData(id)
		}
	}
}

func (b *Bus) pruneEvents(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	kept := slices.DeleteFunc(b.events[id], func(e *eventEntry) bool { return !e.live() })
	if len(kept) == 0 {
		delete(b.events, id)
		return
	}
	b.events[id] = kept
}

func (b *Bus) pruneData(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	kept := slices.DeleteFunc(b.data[id], func(e *dataEntry) bool { return !e.live() })
	if len(kept) == 0 {
		delete(b.data, id)
		return
	}
	b.data[id] = kept
}
