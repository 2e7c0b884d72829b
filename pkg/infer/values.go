// Package infer builds type graphs from data samples and from JSON Schema
// documents.
package infer

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/usestring/json2types/pkg/document"
	tg "github.com/usestring/json2types/pkg/typegraph"
	"github.com/usestring/json2types/pkg/unions"
)

// FromSamples infers one type describing every sample. Samples that disagree
// become a union at the position where they differ.
func FromSamples(samples []any, opts *Options) (*tg.Schema, error) {
	if len(samples) == 0 {
		return nil, ErrEmptyInput
	}
	opts = opts.withDefaults()

	g := tg.New()
	vi := newValueInferrer(g, unions.NewBuilder(g), opts.MaxDepth)
	rootHint := PascalCase(opts.RootName)

	handles := make([]tg.Handle, 0, len(samples))
	for i, s := range samples {
		h, err := vi.infer(s, rootHint, 0)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		handles = append(handles, h)
	}
	root := vi.unions.Build(handles...)

	opts.Logger.Debug("inferred from samples",
		slog.Int("samples", len(samples)),
		slog.String("root_kind", g.Kind(root).String()),
		slog.Int("nodes", g.Len()),
	)
	return &tg.Schema{Graph: g, Root: root}, nil
}

type valueInferrer struct {
	g        *tg.Graph
	unions   *unions.Builder
	maxDepth int
}

func newValueInferrer(g *tg.Graph, u *unions.Builder, maxDepth int) *valueInferrer {
	return &valueInferrer{g: g, unions: u, maxDepth: maxDepth}
}

// infer maps one value to a handle. hint names records built for this
// position.
func (vi *valueInferrer) infer(v any, hint string, depth int) (tg.Handle, error) {
	switch val := v.(type) {
	case nil:
		return vi.g.Primitive(tg.KindNull), nil
	case bool:
		return vi.g.Primitive(tg.KindBool), nil
	case string:
		return vi.g.Primitive(tg.KindString), nil
	case json.Number:
		return vi.g.Primitive(numberKind(val)), nil
	case float64, float32:
		return vi.g.Primitive(tg.KindFloat), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return vi.g.Primitive(tg.KindInt), nil
	}

	if depth >= vi.maxDepth {
		return tg.Handle{}, ErrTooDeep
	}

	switch val := v.(type) {
	case []any:
		elems := make([]tg.Handle, 0, len(val))
		for _, e := range val {
			h, err := vi.infer(e, hint, depth+1)
			if err != nil {
				return tg.Handle{}, err
			}
			elems = append(elems, h)
		}
		return vi.g.Insert(&tg.Array{Elem: vi.unions.Build(elems...)}), nil

	case *document.Object:
		if val.Len() == 0 {
			return vi.g.Primitive(tg.KindAny), nil
		}
		r := tg.NewRecord()
		r.AddHint(hint)
		for p := val.Oldest(); p != nil; p = p.Next() {
			h, err := vi.infer(p.Value, PascalCase(p.Key), depth+1)
			if err != nil {
				return tg.Handle{}, err
			}
			r.Fields.Set(p.Key, h)
		}
		return vi.g.Insert(r), nil

	case map[string]any:
		if len(val) == 0 {
			return vi.g.Primitive(tg.KindAny), nil
		}
		r := tg.NewRecord()
		r.AddHint(hint)
		for _, k := range slices.Sorted(maps.Keys(val)) {
			h, err := vi.infer(val[k], PascalCase(k), depth+1)
			if err != nil {
				return tg.Handle{}, err
			}
			r.Fields.Set(k, h)
		}
		return vi.g.Insert(r), nil

	default:
		return vi.g.Primitive(tg.KindAny), nil
	}
}

// numberKind classifies a JSON number by its literal: integers have no
// fraction or exponent.
func numberKind(n json.Number) tg.Kind {
	if strings.ContainsAny(n.String(), ".eE") {
		return tg.KindFloat
	}
	return tg.KindInt
}
