package optimize

import (
	"strings"

	tg "github.com/usestring/json2types/pkg/typegraph"
)

// groupSimilar redirects every reachable record to the first structurally
// equal record encountered. The representative absorbs the name hints of
// the records merged into it.
func groupSimilar(s *tg.Schema) redirects {
	g := s.Graph
	r := redirects{}
	// Records can only be equal when their field names match, so candidates
	// are bucketed by field list.
	buckets := make(map[string][]tg.Handle)
	for _, h := range tg.Handles(g.Reachable(s.Root)) {
		rec, ok := g.Record(h)
		if !ok {
			continue
		}
		key := fieldKey(rec)
		rep, found := findEqual(g, buckets[key], h)
		if !found {
			buckets[key] = append(buckets[key], h)
			continue
		}
		repRec, _ := g.Record(rep)
		repRec.NameHints.Merge(rec.NameHints)
		r[h] = rep
	}
	return r
}

func findEqual(g *tg.Graph, candidates []tg.Handle, h tg.Handle) (tg.Handle, bool) {
	for _, c := range candidates {
		if g.Equal(c, h) {
			return c, true
		}
	}
	return tg.Handle{}, false
}

func fieldKey(rec *tg.Record) string {
	var b strings.Builder
	for p := rec.Fields.Oldest(); p != nil; p = p.Next() {
		b.WriteString(p.Key)
		b.WriteByte(0)
	}
	return b.String()
}
