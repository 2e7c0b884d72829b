package typegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(g *Graph, fields ...any) Handle {
	r := NewRecord()
	for i := 0; i < len(fields); i += 2 {
		r.Fields.Set(fields[i].(string), fields[i+1].(Handle))
	}
	return g.Insert(r)
}

func TestGraph_PrimitiveIsCanonical(t *testing.T) {
	g := New()
	a := g.Primitive(KindInt)
	b := g.Primitive(KindInt)
	s := g.Primitive(KindString)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, s)
	assert.Equal(t, 2, g.Len())
}

func TestGraph_InsertPrimitiveRoutesToCache(t *testing.T) {
	g := New()
	a := g.Primitive(KindBool)
	b := g.Insert(Primitive{K: KindBool})
	assert.Equal(t, a, b)
	assert.Equal(t, 1, g.Len())
}

func TestGraph_InsertNeverAliases(t *testing.T) {
	g := New()
	i := g.Primitive(KindInt)
	a := g.Insert(&Array{Elem: i})
	b := g.Insert(&Array{Elem: i})
	assert.NotEqual(t, a, b)
	assert.True(t, g.Equal(a, b))
}

func TestGraph_PrimitivePanicsOnCompositeKind(t *testing.T) {
	g := New()
	assert.Panics(t, func() { g.Primitive(KindRecord) })
}

func TestGraph_ResolveForeignHandlePanics(t *testing.T) {
	g1, g2 := New(), New()
	g1.Primitive(KindInt)
	h := g1.Insert(&Array{Elem: g1.Primitive(KindInt)})
	assert.Panics(t, func() { g2.Resolve(h) })
}

func TestGraph_InsertRecordInitializesMaps(t *testing.T) {
	g := New()
	h := g.Insert(&Record{})
	r, ok := g.Record(h)
	require.True(t, ok)
	assert.NotNil(t, r.Fields)
	assert.NotNil(t, r.NameHints)
}

func TestEqual_Records(t *testing.T) {
	g := New()
	i, s := g.Primitive(KindInt), g.Primitive(KindString)

	tests := []struct {
		name string
		a, b Handle
		want bool
	}{
		{"same fields", record(g, "a", i, "b", s), record(g, "a", i, "b", s), true},
		{"different order", record(g, "a", i, "b", s), record(g, "b", s, "a", i), false},
		{"different type", record(g, "a", i), record(g, "a", s), false},
		{"different arity", record(g, "a", i), record(g, "a", i, "b", s), false},
		{"nested", record(g, "x", record(g, "a", i)), record(g, "x", record(g, "a", i)), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, g.Equal(tt.b, tt.a))
		})
	}
}

func TestEqual_IgnoresNameHints(t *testing.T) {
	g := New()
	i := g.Primitive(KindInt)
	a := record(g, "a", i)
	b := record(g, "a", i)
	ra, _ := g.Record(a)
	ra.AddHint("Left")
	rb, _ := g.Record(b)
	rb.AddHint("Right")
	assert.True(t, g.Equal(a, b))
}

func TestEqual_UnionsAsSets(t *testing.T) {
	g := New()
	i, s, b := g.Primitive(KindInt), g.Primitive(KindString), g.Primitive(KindBool)
	u1 := g.Insert(&Union{Members: []Handle{i, s}})
	u2 := g.Insert(&Union{Members: []Handle{s, i}})
	u3 := g.Insert(&Union{Members: []Handle{s, b}})

	assert.True(t, g.Equal(u1, u2))
	assert.False(t, g.Equal(u1, u3))
}

func TestEqual_TerminatesOnCycles(t *testing.T) {
	g := New()
	i := g.Primitive(KindInt)

	// Two independent self-referential lists: {value: Int, next: self}
	a := g.Insert(NewRecord())
	ra, _ := g.Record(a)
	ra.Fields.Set("value", i)
	ra.Fields.Set("next", a)

	b := g.Insert(NewRecord())
	rb, _ := g.Record(b)
	rb.Fields.Set("value", i)
	rb.Fields.Set("next", b)

	assert.True(t, g.Equal(a, b))

	c := g.Insert(NewRecord())
	rc, _ := g.Record(c)
	rc.Fields.Set("value", g.Primitive(KindString))
	rc.Fields.Set("next", c)
	assert.False(t, g.Equal(a, c))
}

func TestReachable_InsertionOrder(t *testing.T) {
	g := New()
	i := g.Primitive(KindInt)
	orphan := g.Insert(&Array{Elem: i})
	inner := record(g, "n", i)
	root := record(g, "inner", inner, "list", g.Insert(&Array{Elem: inner}))

	reach := g.Reachable(root)
	assert.False(t, reach.Contains(orphan.ID()))

	hs := Handles(reach)
	require.Len(t, hs, 4)
	for k := 1; k < len(hs); k++ {
		assert.Less(t, hs[k-1].ID(), hs[k].ID())
	}
}

func TestReaches(t *testing.T) {
	g := New()
	i := g.Primitive(KindInt)
	leaf := record(g, "n", i)
	mid := record(g, "leaf", leaf)
	top := record(g, "mid", mid)

	assert.True(t, g.Reaches(top, leaf))
	assert.False(t, g.Reaches(leaf, top))
	assert.False(t, g.Reaches(top, top))

	self := g.Insert(NewRecord())
	r, _ := g.Record(self)
	r.Fields.Set("self", self)
	assert.True(t, g.Reaches(self, self))
}

func TestStats(t *testing.T) {
	g := New()
	i, s := g.Primitive(KindInt), g.Primitive(KindString)
	g.Insert(&Array{Elem: s}) // orphan
	u := g.Insert(&Union{Members: []Handle{i, s}})
	root := record(g, "v", u, "xs", g.Insert(&Array{Elem: i}))

	st := g.Stats(root)
	assert.Equal(t, Stats{Nodes: 5, Records: 1, Arrays: 1, Unions: 1, Primitives: 2, Orphans: 1}, st)
}

func TestNameHints(t *testing.T) {
	h := NewNameHints("Foo", "", "Bar")
	assert.Len(t, h, 2)
	assert.True(t, h.Intersects(NewNameHints("Bar", "Baz")))
	assert.False(t, h.Intersects(NewNameHints("Baz")))

	h.Merge(NewNameHints("Baz"))
	assert.Equal(t, []string{"Bar", "Baz", "Foo"}, h.Sorted())
}
