package typegraph

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// Reachable returns the set of handle IDs reachable from root, root
// included. Iterating the bitmap visits nodes in insertion order.
func (g *Graph) Reachable(root Handle) *roaring.Bitmap {
	seen := roaring.New()
	stack := []Handle{root}
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !seen.CheckedAdd(h.idx) {
			continue
		}
		for _, c := range Children(g.Resolve(h)) {
			if !seen.Contains(c.idx) {
				stack = append(stack, c)
			}
		}
	}
	return seen
}

// Handles converts a bitmap produced by Reachable back into handles, in
// insertion order.
func Handles(set *roaring.Bitmap) []Handle {
	out := make([]Handle, 0, set.GetCardinality())
	it := set.Iterator()
	for it.HasNext() {
		out = append(out, Handle{idx: it.Next()})
	}
	return out
}

// Reaches reports whether to is reachable from from by following at least
// one edge.
func (g *Graph) Reaches(from, to Handle) bool {
	seen := roaring.New()
	stack := Children(g.Resolve(from))
	for len(stack) > 0 {
		h := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if h == to {
			return true
		}
		if !seen.CheckedAdd(h.idx) {
			continue
		}
		stack = append(stack, Children(g.Resolve(h))...)
	}
	return false
}

// Stats counts reachable nodes per kind.
type Stats struct {
	Nodes      int `json:"nodes"`
	Records    int `json:"records"`
	Arrays     int `json:"arrays"`
	Unions     int `json:"unions"`
	Primitives int `json:"primitives"`
	Orphans    int `json:"orphans"`
}

// Stats summarizes the part of the graph reachable from root.
func (g *Graph) Stats(root Handle) Stats {
	reach := g.Reachable(root)
	st := Stats{Nodes: int(reach.GetCardinality())}
	st.Orphans = g.Len() - st.Nodes
	for _, h := range Handles(reach) {
		switch g.Kind(h) {
		case KindRecord:
			st.Records++
		case KindArray:
			st.Arrays++
		case KindUnion:
			st.Unions++
		default:
			st.Primitives++
		}
	}
	return st
}
