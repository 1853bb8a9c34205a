package lang

import (
	"iter"
	"maps"
	"slices"
)

// Lookup is a read-only view of variables.
type Lookup interface {
	Get(name string) (Value, bool)
}

// Store maps variable names to values for the lifetime of one interpreter.
// Names are unique; the last write wins and may change a name's variant.
//
// A Store is not safe for concurrent use.
type Store struct {
	vars map[string]Value
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{vars: make(map[string]Value)}
}

// Get returns the value bound to name. Absence is reported by ok == false and
// is never an error.
func (s *Store) Get(name string) (v Value, ok bool) {
	if s == nil {
		return v, false
	}

	v, ok = s.vars[name]

	return v, ok
}

// Set binds name to v, replacing any previous binding.
func (s *Store) Set(name string, v Value) {
	if s.vars == nil {
		s.vars = make(map[string]Value)
	}

	s.vars[name] = v
}

// Len returns the number of bound names.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}

	return len(s.vars)
}

// Names returns the bound names in sorted order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}

	return slices.Sorted(maps.Keys(s.vars))
}

// All returns an iterator over all bindings ordered by name.
func (s *Store) All() iter.Seq2[string, Value] {
	return func(yield func(string, Value) bool) {
		for _, name := range s.Names() {
			if !yield(name, s.vars[name]) {
				return
			}
		}
	}
}
