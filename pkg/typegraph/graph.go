package typegraph

import (
	"fmt"
	"iter"
)

// Handle is an opaque reference to a node in one Graph. Two handles are
// equal iff they name the same node. A handle is meaningless for any graph
// other than the one that issued it.
type Handle struct {
	idx uint32
}

// ID returns the handle's position in its graph's insertion order.
func (h Handle) ID() uint32 { return h.idx }

func (h Handle) String() string { return fmt.Sprintf("#%d", h.idx) }

// Graph owns every type node of one inference run. Nodes are never removed.
type Graph struct {
	nodes      []Type
	primitives [numPrimitives]Handle
	hasPrim    [numPrimitives]bool
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{}
}

// Primitive returns the canonical handle for kind k, creating the node on
// first use. It panics if k is not a primitive kind.
func (g *Graph) Primitive(k Kind) Handle {
	if !k.IsPrimitive() {
		panic(fmt.Sprintf("typegraph: %s is not a primitive kind", k))
	}
	if g.hasPrim[k] {
		return g.primitives[k]
	}
	h := g.push(Primitive{K: k})
	g.primitives[k] = h
	g.hasPrim[k] = true
	return h
}

// Insert stores a freshly built node and returns a new handle for it.
// Primitives are routed through the primitive cache.
func (g *Graph) Insert(t Type) Handle {
	switch n := t.(type) {
	case Primitive:
		return g.Primitive(n.K)
	case *Record:
		if n.Fields == nil {
			n.Fields = NewFields()
		}
		if n.NameHints == nil {
			n.NameHints = NameHints{}
		}
	case *Array, *Union:
	default:
		panic(fmt.Sprintf("typegraph: cannot insert %T", t))
	}
	return g.push(t)
}

func (g *Graph) push(t Type) Handle {
	h := Handle{idx: uint32(len(g.nodes))}
	g.nodes = append(g.nodes, t)
	return h
}

// Resolve dereferences h. It panics for a handle this graph never issued.
func (g *Graph) Resolve(h Handle) Type {
	if int(h.idx) >= len(g.nodes) {
		panic(fmt.Sprintf("typegraph: handle %s does not belong to this graph", h))
	}
	return g.nodes[h.idx]
}

// Kind is shorthand for Resolve(h).Kind().
func (g *Graph) Kind(h Handle) Kind {
	return g.Resolve(h).Kind()
}

// Record resolves h as a record.
func (g *Graph) Record(h Handle) (*Record, bool) {
	r, ok := g.Resolve(h).(*Record)
	return r, ok
}

// Union resolves h as a union.
func (g *Graph) Union(h Handle) (*Union, bool) {
	u, ok := g.Resolve(h).(*Union)
	return u, ok
}

// Len returns the number of nodes, including orphans left by optimization.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// All yields every node in insertion order.
func (g *Graph) All() iter.Seq2[Handle, Type] {
	return func(yield func(Handle, Type) bool) {
		for i, t := range g.nodes {
			if !yield(Handle{idx: uint32(i)}, t) {
				return
			}
		}
	}
}

// Children returns the handles n refers to, in field/member order.
func Children(n Type) []Handle {
	switch t := n.(type) {
	case *Array:
		return []Handle{t.Elem}
	case *Record:
		out := make([]Handle, 0, t.Fields.Len())
		for p := t.Fields.Oldest(); p != nil; p = p.Next() {
			out = append(out, p.Value)
		}
		return out
	case *Union:
		return t.Members
	default:
		return nil
	}
}

// AddHint records a name hint on r.
func (r *Record) AddHint(name string) {
	if r.NameHints == nil {
		r.NameHints = NameHints{}
	}
	r.NameHints.Add(name)
}
