package optimize

import (
	tg "github.com/usestring/json2types/pkg/typegraph"
	"github.com/usestring/json2types/pkg/unions"
)

// redirects maps a merged node to the node that replaces it.
type redirects map[tg.Handle]tg.Handle

// target follows h through r to its final replacement.
func (r redirects) target(h tg.Handle) tg.Handle {
	for range len(r) + 1 {
		next, ok := r[h]
		if !ok {
			return h
		}
		h = next
	}
	return h
}

// apply rewrites every reference reachable from the root through r: record
// fields, array elements, union members and the root itself. Union members
// made equal by the rewrite are deduplicated, and a union left with a
// single member is replaced by that member in a further round.
func apply(s *tg.Schema, r redirects) {
	g := s.Graph
	b := unions.NewBuilder(g)
	for len(r) > 0 {
		collapsed := redirects{}
		for _, h := range tg.Handles(g.Reachable(s.Root)) {
			switch n := g.Resolve(h).(type) {
			case *tg.Record:
				for p := n.Fields.Oldest(); p != nil; p = p.Next() {
					p.Value = r.target(p.Value)
				}
			case *tg.Array:
				n.Elem = r.target(n.Elem)
			case *tg.Union:
				members := make([]tg.Handle, len(n.Members))
				for i, m := range n.Members {
					members[i] = r.target(m)
				}
				n.Members = b.Dedup(members)
				if len(n.Members) == 1 {
					collapsed[h] = n.Members[0]
				}
			}
		}
		s.Root = r.target(s.Root)
		r = collapsed
	}
}

// reachesVia reports whether to can be reached from from by following at
// least one edge, reading every edge through r.
func reachesVia(g *tg.Graph, r redirects, from, to tg.Handle) bool {
	seen := make(map[tg.Handle]bool)
	stack := tg.Children(g.Resolve(r.target(from)))
	for len(stack) > 0 {
		h := r.target(stack[len(stack)-1])
		stack = stack[:len(stack)-1]
		if h == to {
			return true
		}
		if seen[h] {
			continue
		}
		seen[h] = true
		stack = append(stack, tg.Children(g.Resolve(h))...)
	}
	return false
}
