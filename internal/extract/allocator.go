package extract

import (
	"strconv"

	"github.com/goliatone/go-convert/internal/identity"
)

// Allocator hands out globally unique, deterministic segment ids for one load
// operation. A single instance spans every entry of a container package, so
// two entries that would otherwise produce colliding local ids stay distinct.
// Allocation is strictly ordered by entry processing order, which keeps ids
// reproducible across repeated loads of the same package.
//
// Allocators are scoped to one load or merge; never share an instance across
// operations.
type Allocator struct {
	perEntry map[string]int
	seen     map[string]bool
	sequence int
}

// NewAllocator returns an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{
		perEntry: map[string]int{},
		seen:     map[string]bool{},
	}
}

// Next allocates the id for the next segment of entryName. It returns the
// segment's ordinal within the entry (1-based) and the derived id.
func (a *Allocator) Next(entryName string) (int, string) {
	a.sequence++
	a.perEntry[entryName]++
	ordinal := a.perEntry[entryName]

	id := identity.SegmentUUID(entryName, ordinal).String()
	for retry := 0; a.seen[id]; retry++ {
		id = identity.SegmentUUID(entryName+"#"+strconv.Itoa(a.sequence)+"#"+strconv.Itoa(retry), ordinal).String()
	}
	a.seen[id] = true
	return ordinal, id
}
