package registry

import (
	"sync"

	"github.com/arthur-debert/templatizer/pkg/errors"
)

// Registry stores items by name and remembers the order they were added in
type Registry[T any] interface {
	// Register adds item under name. Empty and already used names are rejected.
	Register(name string, item T) error

	// Get returns the item registered under name
	Get(name string) (T, error)

	// List returns the registered names in registration order
	List() []string

	Has(name string) bool
	Count() int
}

type slot[T any] struct {
	name string
	item T
}

type registry[T any] struct {
	mu      sync.RWMutex
	entries []slot[T]
	index   map[string]int
}

// New creates an empty Registry
func New[T any]() Registry[T] {
	return &registry[T]{index: make(map[string]int)}
}

func (r *registry[T]) Register(name string, item T) error {
	if name == "" {
		return errors.New(errors.ErrInvalidInput, "registry name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.index[name]; taken {
		return errors.Newf(errors.ErrAlreadyExists, "item '%s' is already registered", name).
			WithDetail("name", name)
	}
	r.index[name] = len(r.entries)
	r.entries = append(r.entries, slot[T]{name: name, item: item})
	return nil
}

func (r *registry[T]) Get(name string) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[name]
	if !ok {
		var zero T
		return zero, errors.Newf(errors.ErrNotFound, "item '%s' not found in registry", name).
			WithDetail("name", name)
	}
	return r.entries[i].item, nil
}

func (r *registry[T]) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.name
	}
	return names
}

func (r *registry[T]) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.index[name]
	return ok
}

func (r *registry[T]) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}
