package typegraph

import (
	"maps"
	"slices"
)

// NameHints is the set of candidate display names observed for a record.
// Hints are advisory and never affect structural equality.
type NameHints map[string]struct{}

// NewNameHints builds a set from the non-empty names given.
func NewNameHints(names ...string) NameHints {
	h := make(NameHints, len(names))
	for _, n := range names {
		h.Add(n)
	}
	return h
}

// Add inserts name. Empty names are ignored.
func (h NameHints) Add(name string) {
	if name == "" {
		return
	}
	h[name] = struct{}{}
}

// Has reports whether name is present.
func (h NameHints) Has(name string) bool {
	_, ok := h[name]
	return ok
}

// Merge adds every hint of other to h.
func (h NameHints) Merge(other NameHints) {
	for n := range other {
		h[n] = struct{}{}
	}
}

// Intersects reports whether h and other share at least one hint.
func (h NameHints) Intersects(other NameHints) bool {
	small, large := h, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for n := range small {
		if large.Has(n) {
			return true
		}
	}
	return false
}

// Sorted returns the hints in lexicographic order.
func (h NameHints) Sorted() []string {
	return slices.Sorted(maps.Keys(h))
}
