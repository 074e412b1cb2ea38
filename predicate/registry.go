package predicate

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrUnknownPredicate is returned when a name is not registered.
	ErrUnknownPredicate = errors.New("predicate: unknown predicate")
	// ErrDuplicatePredicate is returned when registering a taken name.
	ErrDuplicatePredicate = errors.New("predicate: duplicate predicate")
)

// Registry maps predicate names to implementations. Adding a predicate
// means registering it; evaluation never switches on names.
type Registry struct {
	mu    sync.RWMutex
	preds map[string]Predicate
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{preds: map[string]Predicate{}}
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the shared registry pre-loaded with the built-ins.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
		for _, p := range Builtins() {
			defaultRegistry.MustRegister(p)
		}
	})
	return defaultRegistry
}

// WithBuiltins returns a fresh registry holding the built-ins, for callers
// that want to extend the set without touching Default.
func WithBuiltins() *Registry {
	r := NewRegistry()
	for _, p := range Builtins() {
		r.MustRegister(p)
	}
	return r
}

// Normalize canonicalizes a predicate name: surrounding space and a
// trailing "?" are dropped, so "gt?" and "gt" are the same predicate.
func Normalize(name string) string {
	return strings.TrimSuffix(strings.TrimSpace(name), "?")
}

// Register adds p under its normalized name.
func (r *Registry) Register(p Predicate) error {
	if p == nil {
		return fmt.Errorf("%w: nil predicate", ErrInvalidArgs)
	}
	name := Normalize(p.Name())
	if name == "" {
		return fmt.Errorf("%w: empty predicate name", ErrInvalidArgs)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.preds[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePredicate, name)
	}
	r.preds[name] = p
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(p Predicate) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// Lookup finds a predicate by name.
func (r *Registry) Lookup(name string) (Predicate, bool) {
	r.mu.RLock()
	p, ok := r.preds[Normalize(name)]
	r.mu.RUnlock()
	return p, ok
}

// Bind looks up name and binds args to it.
func (r *Registry) Bind(name string, args ...any) (Call, error) {
	p, ok := r.Lookup(name)
	if !ok {
		return Call{}, fmt.Errorf("%w: %s", ErrUnknownPredicate, Normalize(name))
	}
	return Bind(p, args...)
}

// Names lists registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	out := make([]string, 0, len(r.preds))
	for n := range r.preds {
		out = append(out, n)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

// Register adds p to the Default registry.
func Register(p Predicate) error { return Default().Register(p) }
