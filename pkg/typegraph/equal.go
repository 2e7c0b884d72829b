package typegraph

type handlePair struct {
	a, b Handle
}

// equality compares nodes structurally. Pairs already under comparison on
// the current path are assumed equal, which makes the check terminate on
// cyclic graphs.
type equality struct {
	g      *Graph
	onPath map[handlePair]struct{}
}

// Equal reports whether a and b are structurally equal: same primitive kind,
// equal array elements, records with the same field names in the same order
// and pairwise equal field types, or unions with equal member sets. Name
// hints are ignored.
func (g *Graph) Equal(a, b Handle) bool {
	e := &equality{g: g, onPath: make(map[handlePair]struct{})}
	return e.equal(a, b)
}

func (e *equality) equal(a, b Handle) bool {
	if a == b {
		return true
	}
	ta, tb := e.g.Resolve(a), e.g.Resolve(b)
	if ta.Kind() != tb.Kind() {
		return false
	}

	key := handlePair{a, b}
	if _, ok := e.onPath[key]; ok {
		return true
	}
	e.onPath[key] = struct{}{}
	defer delete(e.onPath, key)

	switch x := ta.(type) {
	case Primitive:
		return true
	case *Array:
		return e.equal(x.Elem, tb.(*Array).Elem)
	case *Record:
		return e.equalRecords(x, tb.(*Record))
	case *Union:
		y := tb.(*Union)
		return e.covers(x.Members, y.Members) && e.covers(y.Members, x.Members)
	default:
		return false
	}
}

func (e *equality) equalRecords(x, y *Record) bool {
	if x.Fields.Len() != y.Fields.Len() {
		return false
	}
	for px, py := x.Fields.Oldest(), y.Fields.Oldest(); px != nil; px, py = px.Next(), py.Next() {
		if px.Key != py.Key {
			return false
		}
		if !e.equal(px.Value, py.Value) {
			return false
		}
	}
	return true
}

// covers reports whether every member of xs has an equal member in ys.
func (e *equality) covers(xs, ys []Handle) bool {
	for _, x := range xs {
		found := false
		for _, y := range ys {
			if e.equal(x, y) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
