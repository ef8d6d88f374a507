package types

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/beevik/etree"
)

// Reconstructor rebuilds an entity of one kind from its document node.
type Reconstructor func(node *etree.Element) (Kinded, error)

// Registry errors.
var (
	ErrInvalidKind   = errors.New("invalid entity kind")
	ErrDuplicateKind = errors.New("entity kind already registered")
	ErrMissingType   = errors.New("node has no type attribute")
	ErrUnknownType   = errors.New("unknown entity type")
)

// Registry maps kind discriminators to reconstructors so that nodes of
// several entity kinds sharing one schema decode to the right type.
// A Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	kinds map[string]Reconstructor
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{kinds: make(map[string]Reconstructor)}
}

// DefaultRegistry returns a Registry with every kind in this package
// registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(ProductType, decodeProduct)
	return r
}

// Register adds fn as the reconstructor for kind.
// Returns ErrInvalidKind for an empty kind or nil fn, and ErrDuplicateKind if
// kind is already registered.
func (r *Registry) Register(kind string, fn Reconstructor) error {
	if kind == "" || fn == nil {
		return ErrInvalidKind
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.kinds[kind]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateKind, kind)
	}
	r.kinds[kind] = fn
	return nil
}

// Decode reads the type attribute of node and dispatches to the matching
// reconstructor.
func (r *Registry) Decode(node *etree.Element) (Kinded, error) {
	if node == nil {
		return nil, ErrInvalidNode
	}
	kind, ok := NodeType(node)
	if !ok {
		return nil, ErrMissingType
	}

	r.mu.RLock()
	fn, ok := r.kinds[kind]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, kind)
	}

	e, err := fn(node)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", kind, err)
	}
	return e, nil
}

// Kinds returns the registered kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.kinds))
	for k := range r.kinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
