package render

import (
	"github.com/invopop/jsonschema"

	tg "github.com/usestring/json2types/pkg/typegraph"
)

const defsPrefix = "#/$defs/"

// JSONSchema renders s as a JSON Schema (Draft 2020-12) document. Every
// record becomes an entry under $defs and is referenced by name, so shared
// and recursive records are written once. Unions become anyOf and Any
// becomes the true schema.
func JSONSchema(s *tg.Schema) *jsonschema.Schema {
	c := &converter{
		g:     s.Graph,
		namer: NewNamer(s),
		defs:  jsonschema.Definitions{},
	}

	var root *jsonschema.Schema
	if s.Graph.Kind(s.Root) == tg.KindAny {
		root = &jsonschema.Schema{}
	} else {
		root = c.schema(s.Root)
	}
	for _, h := range c.namer.Records() {
		c.defs[c.namer.Name(h)] = c.record(h)
	}

	root.Version = jsonschema.Version
	if len(c.defs) > 0 {
		root.Definitions = c.defs
	}
	return root
}

type converter struct {
	g     *tg.Graph
	namer *Namer
	defs  jsonschema.Definitions
}

func (c *converter) schema(h tg.Handle) *jsonschema.Schema {
	switch n := c.g.Resolve(h).(type) {
	case tg.Primitive:
		return primitiveSchema(n.K)
	case *tg.Array:
		return &jsonschema.Schema{Type: "array", Items: c.schema(n.Elem)}
	case *tg.Record:
		return &jsonschema.Schema{Ref: defsPrefix + c.namer.Name(h)}
	case *tg.Union:
		anyOf := make([]*jsonschema.Schema, 0, len(n.Members))
		for _, m := range n.Members {
			anyOf = append(anyOf, c.schema(m))
		}
		return &jsonschema.Schema{AnyOf: anyOf}
	default:
		return jsonschema.TrueSchema
	}
}

// record renders the definition of a record. Every field observed for the
// shape is required.
func (c *converter) record(h tg.Handle) *jsonschema.Schema {
	r, _ := c.g.Record(h)
	out := &jsonschema.Schema{
		Type:       "object",
		Title:      c.namer.Name(h),
		Properties: jsonschema.NewProperties(),
	}
	for p := r.Fields.Oldest(); p != nil; p = p.Next() {
		out.Properties.Set(p.Key, c.schema(p.Value))
		out.Required = append(out.Required, p.Key)
	}
	return out
}

func primitiveSchema(k tg.Kind) *jsonschema.Schema {
	switch k {
	case tg.KindInt:
		return &jsonschema.Schema{Type: "integer"}
	case tg.KindFloat:
		return &jsonschema.Schema{Type: "number"}
	case tg.KindBool:
		return &jsonschema.Schema{Type: "boolean"}
	case tg.KindString:
		return &jsonschema.Schema{Type: "string"}
	case tg.KindNull:
		return &jsonschema.Schema{Type: "null"}
	default:
		return jsonschema.TrueSchema
	}
}
