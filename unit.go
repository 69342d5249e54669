package convert

import (
	"strings"
	"sync"

	"github.com/goliatone/go-convert/store"
)

// UnitAdapter exposes the read-only semantics the host application consumes
// for convert formats: edit state, positional info, and a context key used to
// disambiguate identical source strings.
type UnitAdapter interface {
	// IsTranslated reports whether the underlying fragment link is present.
	// It is a structural "has content" signal, not an edit-state signal.
	IsTranslated() bool
	// IsFuzzy returns the caller-supplied fallback unchanged; convert formats
	// carry no native needs-review flag.
	IsFuzzy(fallback bool) bool
	// Locations is always empty: positional metadata is not meaningful after
	// conversion.
	Locations() string
	// Context returns the derived disambiguation key.
	Context() string
}

// Unit wraps one (source-fragment, target-text) pair. Adapters are immutable
// after construction; derived properties are computed once and cached, and a
// recompute requires constructing a new adapter.
type Unit struct {
	linked *store.Unit
	main   *store.Unit

	ctxOnce sync.Once
	ctx     string
}

var _ UnitAdapter = (*Unit)(nil)

// NewUnit builds an adapter over the linked fragment. main supplies location
// metadata and defaults to the linked unit when nil, mirroring the common
// case where both roles are played by the same fragment.
func NewUnit(linked, main *store.Unit) *Unit {
	if main == nil {
		main = linked
	}
	return &Unit{linked: linked, main: main}
}

// IsTranslated implements UnitAdapter.
func (u *Unit) IsTranslated() bool {
	return u.linked != nil
}

// IsFuzzy implements UnitAdapter.
func (u *Unit) IsFuzzy(fallback bool) bool {
	return fallback
}

// Locations implements UnitAdapter.
func (u *Unit) Locations() string {
	return ""
}

// Context implements UnitAdapter. The key is the concatenation of every raw
// location string attached to the main fragment.
func (u *Unit) Context() string {
	u.ctxOnce.Do(func() {
		if u.main == nil {
			return
		}
		u.ctx = strings.Join(u.main.Locations, "")
	})
	return u.ctx
}

// FileNameUnit derives its context from container entry filenames instead of
// raw location strings. Container formats attach locations of the form
// "archive/entry.xml:3"; the useful disambiguator is the entry filename.
type FileNameUnit struct {
	Unit

	nameOnce sync.Once
	nameCtx  string
}

var _ UnitAdapter = (*FileNameUnit)(nil)

// NewFileNameUnit builds a filename-context adapter; see NewUnit for the
// linked/main split.
func NewFileNameUnit(linked, main *store.Unit) *FileNameUnit {
	if main == nil {
		main = linked
	}
	return &FileNameUnit{Unit: Unit{linked: linked, main: main}}
}

// Context implements UnitAdapter. For every location the substring after the
// last "/" is used; a location without a separator is used whole.
func (u *FileNameUnit) Context() string {
	u.nameOnce.Do(func() {
		if u.main == nil {
			return
		}
		var b strings.Builder
		for _, location := range u.main.Locations {
			b.WriteString(entryName(location))
		}
		u.nameCtx = b.String()
	})
	return u.nameCtx
}

// entryName reduces a location string to the container entry filename:
// "a/b/entry.xml:3" -> "entry.xml". A trailing ":<line>" annotation is
// dropped before splitting; a location with no separator is kept as-is.
func entryName(location string) string {
	if idx := strings.LastIndex(location, ":"); idx >= 0 {
		if line := location[idx+1:]; line != "" && isDigits(line) {
			location = location[:idx]
		}
	}
	if idx := strings.LastIndex(location, "/"); idx >= 0 {
		return location[idx+1:]
	}
	return location
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// AdapterFor returns the unit adapter the driver's descriptor selects.
func AdapterFor(info Info, linked, main *store.Unit) UnitAdapter {
	if info.FilenameContext {
		return NewFileNameUnit(linked, main)
	}
	return NewUnit(linked, main)
}
