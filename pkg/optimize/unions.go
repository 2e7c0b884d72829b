package optimize

import (
	tg "github.com/usestring/json2types/pkg/typegraph"
)

// groupUnions redirects every reachable union to the first union
// encountered with an equal member set.
func groupUnions(s *tg.Schema) redirects {
	g := s.Graph
	r := redirects{}
	buckets := make(map[int][]tg.Handle)
	for _, h := range tg.Handles(g.Reachable(s.Root)) {
		u, ok := g.Union(h)
		if !ok {
			continue
		}
		n := len(u.Members)
		rep, found := findEqual(g, buckets[n], h)
		if !found {
			buckets[n] = append(buckets[n], h)
			continue
		}
		r[h] = rep
	}
	return r
}
