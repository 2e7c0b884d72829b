// Package unions folds the candidate types observed for one position into a
// single type.
package unions

import (
	tg "github.com/usestring/json2types/pkg/typegraph"
)

// Builder produces union nodes in one graph.
type Builder struct {
	g *tg.Graph
}

// NewBuilder returns a builder inserting into g.
func NewBuilder(g *tg.Graph) *Builder {
	return &Builder{g: g}
}

// Build returns the handle that represents every candidate. Nested unions
// are flattened and structurally equal candidates are kept once, first seen
// wins. A single surviving shape is returned as is; zero candidates yield
// Any. When a duplicate record is dropped its name hints move to the
// survivor.
func (b *Builder) Build(candidates ...tg.Handle) tg.Handle {
	members := b.Dedup(b.flatten(candidates))
	switch len(members) {
	case 0:
		return b.g.Primitive(tg.KindAny)
	case 1:
		return members[0]
	default:
		return b.g.Insert(&tg.Union{Members: members})
	}
}

// Fill completes a placeholder union inserted before its candidates were
// built, so candidates may refer back to it. Candidates equal to the
// placeholder are dropped. With two or more members left the placeholder
// holds them and is returned; otherwise the result is what Build would
// return and the placeholder stays empty.
func (b *Builder) Fill(placeholder tg.Handle, candidates ...tg.Handle) tg.Handle {
	u, ok := b.g.Union(placeholder)
	if !ok {
		return b.Build(candidates...)
	}
	members := b.Dedup(b.flatten(candidates, placeholder))
	switch len(members) {
	case 0:
		return b.g.Primitive(tg.KindAny)
	case 1:
		return members[0]
	default:
		u.Members = members
		return placeholder
	}
}

// Dedup removes structurally equal handles, keeping the first of each class.
func (b *Builder) Dedup(hs []tg.Handle) []tg.Handle {
	out := make([]tg.Handle, 0, len(hs))
	for _, h := range hs {
		kept := -1
		for i, o := range out {
			if b.g.Equal(o, h) {
				kept = i
				break
			}
		}
		if kept < 0 {
			out = append(out, h)
			continue
		}
		b.absorbHints(out[kept], h)
	}
	return out
}

func (b *Builder) absorbHints(into, from tg.Handle) {
	if into == from {
		return
	}
	dst, ok := b.g.Record(into)
	if !ok {
		return
	}
	if src, ok := b.g.Record(from); ok {
		dst.NameHints.Merge(src.NameHints)
	}
}

// flatten inlines the members of nested unions. The skip unions are left
// out along with their members.
func (b *Builder) flatten(candidates []tg.Handle, skip ...tg.Handle) []tg.Handle {
	out := make([]tg.Handle, 0, len(candidates))
	seen := make(map[tg.Handle]bool)
	for _, h := range skip {
		seen[h] = true
	}
	var walk func(hs []tg.Handle)
	walk = func(hs []tg.Handle) {
		for _, h := range hs {
			u, ok := b.g.Union(h)
			if !ok {
				out = append(out, h)
				continue
			}
			if seen[h] {
				continue
			}
			seen[h] = true
			walk(u.Members)
		}
	}
	walk(candidates)
	return out
}
