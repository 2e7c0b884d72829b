// Package render turns an inferred type graph into output documents.
package render

import (
	"cmp"
	"slices"
	"strconv"

	tg "github.com/usestring/json2types/pkg/typegraph"
)

// Namer assigns each reachable record a unique display name derived from
// its name hints.
type Namer struct {
	names map[tg.Handle]string
	order []tg.Handle
}

// NewNamer names every record reachable from the root of s, in insertion
// order. A record takes its shortest hint (ties broken lexicographically);
// a record without hints is called Type<N>. Repeated names get a numeric
// suffix starting at 2.
func NewNamer(s *tg.Schema) *Namer {
	n := &Namer{names: make(map[tg.Handle]string)}
	used := make(map[string]bool)
	anonymous := 0
	for _, h := range tg.Handles(s.Graph.Reachable(s.Root)) {
		r, ok := s.Graph.Record(h)
		if !ok {
			continue
		}
		base := bestHint(r.NameHints)
		if base == "" {
			anonymous++
			base = "Type" + strconv.Itoa(anonymous)
		}
		name := base
		for i := 2; used[name]; i++ {
			name = base + strconv.Itoa(i)
		}
		used[name] = true
		n.names[h] = name
		n.order = append(n.order, h)
	}
	return n
}

// Name returns the name assigned to record h, or "" if h is not a named
// record.
func (n *Namer) Name(h tg.Handle) string {
	return n.names[h]
}

// Records returns the named records in naming order.
func (n *Namer) Records() []tg.Handle {
	return n.order
}

func bestHint(hints tg.NameHints) string {
	if len(hints) == 0 {
		return ""
	}
	sorted := hints.Sorted()
	return slices.MinFunc(sorted, func(a, b string) int {
		if c := cmp.Compare(len(a), len(b)); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
}
