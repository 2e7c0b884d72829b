package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	tg "github.com/usestring/json2types/pkg/typegraph"
)

// Text writes a plain listing of s: the root type expression followed by
// one block per record, field names padded to a common display width.
//
//	root: Order
//
//	Order
//	  id     int
//	  items  []Item
//	  note   string | null
func Text(w io.Writer, s *tg.Schema) error {
	namer := NewNamer(s)
	var b strings.Builder
	fmt.Fprintf(&b, "root: %s\n", typeExpr(s.Graph, namer, s.Root))

	for _, h := range namer.Records() {
		r, _ := s.Graph.Record(h)
		fmt.Fprintf(&b, "\n%s\n", namer.Name(h))
		if r.Fields.Len() == 0 {
			b.WriteString("  (no fields)\n")
			continue
		}
		width := 0
		for p := r.Fields.Oldest(); p != nil; p = p.Next() {
			width = max(width, runewidth.StringWidth(p.Key))
		}
		for p := r.Fields.Oldest(); p != nil; p = p.Next() {
			fmt.Fprintf(&b, "  %s  %s\n", runewidth.FillRight(p.Key, width), typeExpr(s.Graph, namer, p.Value))
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func typeExpr(g *tg.Graph, namer *Namer, h tg.Handle) string {
	switch n := g.Resolve(h).(type) {
	case *tg.Record:
		return namer.Name(h)
	case *tg.Array:
		elem := typeExpr(g, namer, n.Elem)
		if g.Kind(n.Elem) == tg.KindUnion {
			elem = "(" + elem + ")"
		}
		return "[]" + elem
	case *tg.Union:
		parts := make([]string, 0, len(n.Members))
		for _, m := range n.Members {
			parts = append(parts, typeExpr(g, namer, m))
		}
		return strings.Join(parts, " | ")
	default:
		return n.Kind().String()
	}
}
