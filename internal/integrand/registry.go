package integrand

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Entry is a named integrand held by a Registry.
type Entry struct {
	Name        string
	Description string
	Integrand   Integrand
}

// Registry maps names to integrands.
//
// Names are compared after NFC normalization and Unicode case folding, so
// "Reference" and "reference" refer to the same entry.
//
// Thread-safety: Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// DefaultRegistry returns a registry holding the reference integrand.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	ref := Reference()
	// Cannot fail on an empty registry.
	_ = r.Register("reference", "reference integrand "+ref.String(), ref)
	return r
}

// Register adds f under name. Registering a taken name fails with
// ErrDuplicateIntegrand; family kinds are reserved.
func (r *Registry) Register(name, description string, f Integrand) error {
	key := normalizeName(name)
	if key == "" {
		return fmt.Errorf("integrand name must not be empty")
	}
	if f == nil {
		return fmt.Errorf("integrand %q: nil integrand", name)
	}
	if IsKind(key) {
		return fmt.Errorf("%w: %q is a reserved family name", ErrDuplicateIntegrand, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[key]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateIntegrand, name)
	}
	r.entries[key] = Entry{Name: key, Description: description, Integrand: f}
	return nil
}

// Lookup returns the entry registered under name.
func (r *Registry) Lookup(name string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[normalizeName(name)]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownIntegrand, name)
	}
	return e, nil
}

// Resolve returns a registered integrand or, when name is a family kind,
// builds one from params. Params are only accepted for family kinds.
func (r *Registry) Resolve(name string, params map[string]float64) (Integrand, error) {
	if IsKind(name) {
		return New(name, params)
	}
	e, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	if len(params) > 0 {
		return nil, fmt.Errorf("integrand %q takes no parameters", e.Name)
	}
	return e.Integrand, nil
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for k := range r.entries {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Entries returns the registered entries sorted by name.
func (r *Registry) Entries() []Entry {
	names := r.Names()
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(names))
	for _, n := range names {
		out = append(out, r.entries[n])
	}
	return out
}

// normalizeName applies NFC normalization and case folding.
// A fresh Caser is used per call; Casers are not safe for concurrent use.
func normalizeName(name string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(name)))
}
