package bus

import (
	"runtime"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-drift/listkit/pkg/errors"
)

type listener struct {
	name string
	hits []any
}

func TestSendEvent_DeliversOnce(t *testing.T) {
	b := New("Feed")
	var got []any
	b.SubscribeEvent("tap", Target{}, func(payload any) { got = append(got, payload) })

	b.SendEvent("tap", "row-1")

	if diff := cmp.Diff([]any{"row-1"}, got); diff != "" {
		t.Errorf("payloads mismatch (-want +got):\n%s", diff)
	}
}

func TestSendEvent_RegistrationOrder(t *testing.T) {
	b := New("Feed")
	var order []int
	for i := 0; i < 5; i++ {
		b.SubscribeEvent("tick", Target{}, func(any) { order = append(order, i) })
	}
	b.SendEvent("tick", nil)
	if diff := cmp.Diff([]int{0, 1, 2, 3, 4}, order); diff != "" {
		t.Errorf("dispatch order mismatch (-want +got):\n%s", diff)
	}
}

func TestSendEvent_UnknownIDIsNoop(t *testing.T) {
	b := New("Feed")
	b.SendEvent("nobody-listens", 1)
	if s := b.Stats(); s.EventIDs != 0 {
		t.Errorf("EventIDs = %d, want 0", s.EventIDs)
	}
}

func TestSubscription_Dispose(t *testing.T) {
	b := New("Feed")
	calls := 0
	sub := b.SubscribeEvent("tap", Target{}, func(any) { calls++ })

	b.SendEvent("tap", nil)
	sub.Dispose()
	sub.Dispose()
	b.SendEvent("tap", nil)

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if !sub.Disposed() {
		t.Error("Disposed() = false after Dispose")
	}
	if s := b.Stats(); s.EventSubscribers != 0 || s.EventIDs != 0 {
		t.Errorf("registry not pruned after dispose: %+v", s)
	}
}

func TestSubscription_DisposeDuringDispatch(t *testing.T) {
	b := New("Feed")
	var second *Subscription
	calls := 0
	b.SubscribeEvent("tap", Target{}, func(any) { second.Dispose() })
	second = b.SubscribeEvent("tap", Target{}, func(any) { calls++ })

	b.SendEvent("tap", nil)

	if calls != 0 {
		t.Errorf("disposed subscriber ran %d times", calls)
	}
}

func TestSubscribeDuringDispatch(t *testing.T) {
	b := New("Feed")
	inner := 0
	b.SubscribeEvent("tap", Target{}, func(any) {
		b.SubscribeEvent("tap", Target{}, func(any) { inner++ })
	})

	b.SendEvent("tap", nil)
	if inner != 0 {
		t.Errorf("subscriber added during dispatch ran in the same dispatch")
	}
	b.SendEvent("tap", nil)
	if inner != 1 {
		t.Errorf("inner = %d, want 1", inner)
	}
}

func TestSubscribeEvents_SharedDisposer(t *testing.T) {
	b := New("Feed")
	var fired []string
	sub := b.SubscribeEvents([]string{"open", "close"}, Target{}, func(id string, payload any) {
		fired = append(fired, id)
	})

	b.SendEvent("open", nil)
	b.SendEvent("close", nil)
	sub.Dispose()
	b.SendEvent("open", nil)
	b.SendEvent("close", nil)

	if diff := cmp.Diff([]string{"open", "close"}, fired); diff != "" {
		t.Errorf("fired mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"open", "close"}, sub.IDs()); diff != "" {
		t.Errorf("IDs mismatch (-want +got):\n%s", diff)
	}
}

func TestWeakTarget_CollectedOwnerIsSkipped(t *testing.T) {
	b := New("Feed")
	calls := 0
	subscribeWithTemporaryOwner(b, &calls)

	runtime.GC()
	runtime.GC()
	b.SendEvent("tap", nil)

	if calls != 0 {
		t.Errorf("calls = %d after owner was collected, want 0", calls)
	}
	if s := b.Stats(); s.EventSubscribers != 0 || s.StaleSubscribers != 0 {
		t.Errorf("dead subscription not pruned: %+v", s)
	}
}

func subscribeWithTemporaryOwner(b *Bus, calls *int) {
	owner := &listener{name: "temporary"}
	b.SubscribeEvent("tap", TargetOf(owner), func(any) { *calls++ })
}

func TestWeakTarget_LiveOwnerReceives(t *testing.T) {
	b := New("Feed")
	owner := &listener{name: "live"}
	b.SubscribeEvent("tap", TargetOf(owner), func(payload any) {
		owner.hits = append(owner.hits, payload)
	})

	runtime.GC()
	b.SendEvent("tap", 7)

	if diff := cmp.Diff([]any{7}, owner.hits); diff != "" {
		t.Errorf("hits mismatch (-want +got):\n%s", diff)
	}
	runtime.KeepAlive(owner)
}

func TestTargetOfNil(t *testing.T) {
	var p *listener
	if !TargetOf(p).Alive() {
		t.Error("TargetOf(nil) should be live")
	}
}

func TestSubscribeEventOf_SkipsMismatch(t *testing.T) {
	b := New("Feed")
	var got []int
	SubscribeEventOf(b, "score", Target{}, func(v int) { got = append(got, v) })

	b.SendEvent("score", 3)
	b.SendEvent("score", "three")
	b.SendEvent("score", nil)
	b.SendEvent("score", 4)

	if diff := cmp.Diff([]int{3, 4}, got); diff != "" {
		t.Errorf("typed payloads mismatch (-want +got):\n%s", diff)
	}
}

func TestPanickingSubscriberDoesNotStopDispatch(t *testing.T) {
	var panics []*errors.PanicError
	old := errors.CurrentHandler()
	errors.SetHandler(&recordingHandler{onPanic: func(p *errors.PanicError) { panics = append(panics, p) }})
	defer errors.SetHandler(old)

	b := New("Feed")
	reached := false
	b.SubscribeEvent("tap", Target{}, func(any) { panic("bad subscriber") })
	b.SubscribeEvent("tap", Target{}, func(any) { reached = true })

	b.SendEvent("tap", nil)

	if !reached {
		t.Error("second subscriber did not run")
	}
	if len(panics) != 1 || panics[0].Op != "bus.SendEvent[Feed]" {
		t.Errorf("panics = %+v", panics)
	}
}

func TestConcurrentSubscribeAndSend(t *testing.T) {
	b := New("Feed")
	var mu sync.Mutex
	count := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			sub := b.SubscribeEvent("tap", Target{}, func(any) {
				mu.Lock()
				count++
				mu.Unlock()
			})
			if i%2 == 0 {
				sub.Dispose()
			}
		}()
		go func() {
			defer wg.Done()
			b.SendEvent("tap", nil)
		}()
	}
	wg.Wait()

	count = 0
	b.SendEvent("tap", nil)
	if count != 25 {
		t.Errorf("live subscribers = %d, want 25", count)
	}
}

func TestTag(t *testing.T) {
	if got := New("ProfileHeader").Tag(); got != "ProfileHeader" {
		t.Errorf("Tag() = %q", got)
	}
}

type recordingHandler struct {
	onPanic func(*errors.PanicError)
}

func (h *recordingHandler) HandleError(*errors.ModelError) {}

func (h *recordingHandler) HandlePanic(p *errors.PanicError) {
	if h.onPanic != nil {
		h.onPanic(p)
	}
}
