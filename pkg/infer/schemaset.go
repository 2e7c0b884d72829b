package infer

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/usestring/json2types/pkg/document"
	tg "github.com/usestring/json2types/pkg/typegraph"
	"github.com/usestring/json2types/pkg/unions"
)

// NamedSchema is one entry of a schema set: a schema name and the raw JSON
// text of its document.
type NamedSchema struct {
	Name string
	Text []byte
}

// FromSchemaSet infers every schema of a set into one graph. The root is a
// record with one field per schema, in input order. Entries without a body
// or with an unresolved reference are skipped; text that cannot be parsed
// aborts the run with a *ParseError.
func FromSchemaSet(entries []NamedSchema, opts *Options) (*tg.Schema, error) {
	opts = opts.withDefaults()

	g := tg.New()
	u := unions.NewBuilder(g)
	root := tg.NewRecord()
	root.AddHint(PascalCase(opts.RootName))

	skipped := 0
	for _, e := range entries {
		doc, err := parseSchemaText(e)
		if err != nil {
			return nil, err
		}

		si := newSchemaInferrer(g, u, doc, opts.MaxDepth)
		h, err := si.inferRoot(doc, PascalCase(e.Name))
		if err != nil {
			if skippable(err) {
				opts.Logger.Warn("skipping schema",
					slog.String("name", e.Name),
					slog.String("reason", err.Error()),
				)
				skipped++
				continue
			}
			return nil, fmt.Errorf("schema %q: %w", e.Name, err)
		}
		root.Fields.Set(e.Name, h)
	}

	rh := g.Insert(root)
	opts.Logger.Debug("inferred from schema set",
		slog.Int("schemas", len(entries)),
		slog.Int("skipped", skipped),
		slog.Int("nodes", g.Len()),
	)
	return &tg.Schema{Graph: g, Root: rh}, nil
}

// parseSchemaText decodes one entry. Blank text is an empty document, not a
// parse failure.
func parseSchemaText(e NamedSchema) (any, error) {
	if strings.TrimSpace(string(e.Text)) == "" {
		return nil, nil
	}
	doc, err := document.DecodeJSON(e.Text)
	if err != nil {
		return nil, &ParseError{Name: e.Name, Err: err}
	}
	return doc, nil
}

// NamedSchemasFromDocument reads a schema set from a decoded JSON object
// mapping names to schemas. A value may be the schema text itself or an
// inline schema object.
func NamedSchemasFromDocument(doc any) ([]NamedSchema, error) {
	obj, ok := document.FromPlain(doc).(*document.Object)
	if !ok {
		return nil, errors.New("schema set must be a JSON object of name to schema")
	}

	out := make([]NamedSchema, 0, obj.Len())
	for p := obj.Oldest(); p != nil; p = p.Next() {
		switch v := p.Value.(type) {
		case string:
			out = append(out, NamedSchema{Name: p.Key, Text: []byte(v)})
		case *document.Object:
			text, err := v.MarshalJSON()
			if err != nil {
				return nil, &ParseError{Name: p.Key, Err: err}
			}
			out = append(out, NamedSchema{Name: p.Key, Text: text})
		default:
			return nil, &ParseError{
				Name: p.Key,
				Err:  fmt.Errorf("expected schema text or object, got %T", p.Value),
			}
		}
	}
	return out, nil
}
