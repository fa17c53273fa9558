package bindings

import (
	"sort"
	"sync"
)

// Scope is an explicit name->value binding context with a typed API.
// It stands in for a module or namespace: assignments go through it,
// and a Safehouse protecting its bindings lives inside it, so clearing
// the scope also clears the backups.
type Scope interface {
	// Name identifies the scope in notices and Refugee records.
	Name() string

	// Get returns the value bound to name, and whether it is bound.
	Get(name string) (interface{}, bool)

	// Set binds name to value as a mutable binding.
	Set(name string, value interface{})

	// SetImmutable binds name to value and marks it immutable.
	SetImmutable(name string, value interface{})

	// Exists reports whether name is bound.
	Exists(name string) bool

	// IsImmutable reports whether name is bound and marked immutable.
	IsImmutable(name string) bool

	// Delete removes the binding for name, if any.
	Delete(name string)

	// Names returns all bound names in sorted order.
	Names() []string
}

// MapScope is the default in-memory Scope implementation.
type MapScope struct {
	mu        sync.RWMutex
	name      string
	values    map[string]interface{}
	immutable map[string]bool
}

// NewScope creates an empty scope with the given name.
func NewScope(name string) *MapScope {
	return &MapScope{
		name:      name,
		values:    make(map[string]interface{}),
		immutable: make(map[string]bool),
	}
}

func (s *MapScope) Name() string {
	return s.name
}

func (s *MapScope) Get(name string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[name]
	return value, ok
}

func (s *MapScope) Set(name string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[name] = value
	delete(s.immutable, name)
}

func (s *MapScope) SetImmutable(name string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[name] = value
	s.immutable[name] = true
}

func (s *MapScope) Exists(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.values[name]
	return ok
}

func (s *MapScope) IsImmutable(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.immutable[name]
}

func (s *MapScope) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, name)
	delete(s.immutable, name)
}

func (s *MapScope) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
