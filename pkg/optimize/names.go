package optimize

import (
	tg "github.com/usestring/json2types/pkg/typegraph"
)

// groupByName redirects every reachable record to the first record
// encountered that shares a name hint with it, whatever their fields. The
// representative keeps its own fields and gains the merged hints. A merge
// that would let the representative reach itself through the redirected
// record is refused, so no new cycle appears.
//
// Groups are joined transitively across rounds: once a representative has
// absorbed a hint, the next round sees the overlap with other groups.
func groupByName(s *tg.Schema) redirects {
	g := s.Graph
	r := redirects{}
	var reps []tg.Handle
	for _, h := range tg.Handles(g.Reachable(s.Root)) {
		rec, ok := g.Record(h)
		if !ok || len(rec.NameHints) == 0 {
			continue
		}
		merged := false
		for _, rep := range reps {
			repRec, _ := g.Record(rep)
			if !repRec.NameHints.Intersects(rec.NameHints) {
				continue
			}
			if reachesVia(g, r, rep, h) || reachesVia(g, r, h, rep) {
				continue
			}
			repRec.NameHints.Merge(rec.NameHints)
			r[h] = rep
			merged = true
			break
		}
		if !merged {
			reps = append(reps, h)
		}
	}
	return r
}
