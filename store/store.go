package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNilUnit is returned when a converter appends a nil unit.
	ErrNilUnit = errors.New("store: unit cannot be nil")
	// ErrDuplicateID is returned when a converter appends a unit whose id is
	// already present in the sequence.
	ErrDuplicateID = errors.New("store: duplicate unit id")
)

// Store is an ordered sequence of translation units. The unit set is fixed by
// the structure of the source file at conversion time; converters append
// units while building the store, after which the sequence only sees target
// edits. Stores are not safe for concurrent use; callers own synchronisation.
type Store struct {
	units []*Unit
	index map[string]*Unit
}

// New returns an empty store.
func New() *Store {
	return &Store{index: map[string]*Unit{}}
}

// Append adds a unit to the end of the sequence. Converter-facing only: the
// convert layer rejects user-level unit creation for every convert format.
func (s *Store) Append(u *Unit) error {
	if u == nil {
		return ErrNilUnit
	}
	if u.ID != "" {
		if _, exists := s.index[u.ID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateID, u.ID)
		}
		s.index[u.ID] = u
	}
	s.units = append(s.units, u)
	return nil
}

// Units returns the ordered unit sequence. The slice is shared; callers edit
// unit targets through it but must not grow or reorder it.
func (s *Store) Units() []*Unit {
	if s == nil {
		return nil
	}
	return s.units
}

// Get returns the unit with the given id.
func (s *Store) Get(id string) (*Unit, bool) {
	if s == nil || id == "" {
		return nil, false
	}
	u, ok := s.index[id]
	return u, ok
}

// Len returns the number of units in the sequence.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.units)
}
