package layout

import (
	"fmt"
	"sort"
	"sync"
)

// CustomLayout is a pluggable layout strategy. The model layer only resolves
// which strategy applies to a container; the layout engine interprets it.
type CustomLayout interface {
	// Name identifies the strategy.
	Name() string
}

// Named is a CustomLayout identified only by its name.
type Named string

// Name returns the strategy name.
func (n Named) Name() string { return string(n) }

// Flow is the built-in strategy used until SetDefault installs another one.
const Flow Named = "flow"

var (
	mu            sync.RWMutex
	defaultLayout CustomLayout = Flow
	registry                   = map[string]CustomLayout{Flow.Name(): Flow}
)

// Default returns the process-wide default strategy. It is never nil.
func Default() CustomLayout {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLayout
}

// SetDefault installs the process-wide default strategy.
// Pass nil to restore Flow.
func SetDefault(l CustomLayout) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		defaultLayout = Flow
		return
	}
	defaultLayout = l
}

// Register makes a strategy available to Lookup under its name,
// replacing any previous registration.
func Register(l CustomLayout) {
	if l == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	registry[l.Name()] = l
}

// Lookup returns the registered strategy with the given name.
func Lookup(name string) (CustomLayout, error) {
	mu.RLock()
	defer mu.RUnlock()
	l, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("layout %q is not registered", name)
	}
	return l, nil
}

// Registered returns the names of all registered strategies, sorted.
func Registered() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
