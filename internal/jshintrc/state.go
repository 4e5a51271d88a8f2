package jshintrc

import (
	"sync"

	"github.com/DevSymphony/sym-jshint/pkg/schema"
)

// State is the cached configuration for the active project.
// current and resolved always change together under the lock.
type State struct {
	mu         sync.RWMutex
	current    schema.Configuration
	resolved   bool
	generation uint64
}

// NewState returns an unresolved state holding the default configuration.
func NewState() *State {
	return &State{current: schema.DefaultConfiguration()}
}

// Snapshot returns the current configuration and whether it is resolved.
func (s *State) Snapshot() (schema.Configuration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.resolved
}

// Generation returns the invalidation cycle counter.
func (s *State) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Resolve stores cfg and marks the state resolved, unless the state was
// invalidated after gen was observed. Reports whether cfg was stored.
func (s *State) Resolve(cfg schema.Configuration, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return false
	}
	s.current = cfg
	s.resolved = true
	return true
}

// Invalidate marks the cached configuration stale and starts a new cycle.
func (s *State) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resolved = false
	s.generation++
}

// IsResolved reports whether a configuration is cached.
func (s *State) IsResolved() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolved
}
