package model

import (
	"sync"
	"testing"

	"github.com/go-drift/listkit/pkg/errors"
)

// recordingHandler counts reported errors and panics.
type recordingHandler struct {
	mu     sync.Mutex
	errs   []*errors.ModelError
	panics []*errors.PanicError
}

func (h *recordingHandler) HandleError(err *errors.ModelError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errs = append(h.errs, err)
}

func (h *recordingHandler) HandlePanic(err *errors.PanicError) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.panics = append(h.panics, err)
}

func (h *recordingHandler) errorCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.errs)
}

func (h *recordingHandler) panicCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.panics)
}

// withPolicy installs an assertion policy and a recording handler for the
// duration of the test.
func withPolicy(t *testing.T, p errors.Policy) *recordingHandler {
	t.Helper()
	h := &recordingHandler{}
	oldHandler := errors.CurrentHandler()
	oldPolicy := errors.CurrentPolicy()
	errors.SetHandler(h)
	errors.SetPolicy(p)
	t.Cleanup(func() {
		errors.SetHandler(oldHandler)
		errors.SetPolicy(oldPolicy)
	})
	return h
}

func idsOf(nodes ...Node) []ID {
	ids := make([]ID, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	return ids
}

// foreignNode satisfies Node without being built by NewCell or NewContainer.
type foreignNode struct {
	nodeBase
}

func (f *foreignNode) base() *nodeBase { return &f.nodeBase }

func newForeignNode() *foreignNode {
	f := &foreignNode{}
	f.id = newID()
	f.tag = "Foreign"
	return f
}
