package infer

import (
	"log/slog"

	"github.com/usestring/json2types/pkg/document"
	tg "github.com/usestring/json2types/pkg/typegraph"
	"github.com/usestring/json2types/pkg/unions"
)

// shapeKeywords mark a schema document as having a body.
var shapeKeywords = []string{
	"type", "properties", "items", "prefixItems", "$ref",
	"anyOf", "oneOf", "allOf", "enum", "const",
}

// FromSchema infers the type described by one parsed JSON Schema document.
// The document must carry at least one shape keyword at its root, otherwise
// ErrEmptyInput is returned. Plain map[string]any trees are accepted; their
// properties are taken in sorted key order.
func FromSchema(doc any, opts *Options) (*tg.Schema, error) {
	opts = opts.withDefaults()
	doc = document.FromPlain(doc)

	g := tg.New()
	si := newSchemaInferrer(g, unions.NewBuilder(g), doc, opts.MaxDepth)
	root, err := si.inferRoot(doc, PascalCase(opts.RootName))
	if err != nil {
		return nil, err
	}

	opts.Logger.Debug("inferred from schema",
		slog.String("root_kind", g.Kind(root).String()),
		slog.Int("nodes", g.Len()),
	)
	return &tg.Schema{Graph: g, Root: root}, nil
}

// hasBody reports whether doc declares any shape at its root.
func hasBody(doc any) bool {
	obj, ok := doc.(*document.Object)
	if !ok {
		return false
	}
	for _, k := range shapeKeywords {
		if _, ok := obj.Get(k); ok {
			return true
		}
	}
	return false
}

type schemaInferrer struct {
	g        *tg.Graph
	unions   *unions.Builder
	values   *valueInferrer
	refs     *resolver
	maxDepth int

	// memo holds the record, array or union allocated for a schema node
	// before its children were inferred; re-entering the node through a
	// reference reuses it, which is how recursive schemas terminate.
	memo map[*document.Object]tg.Handle
	// active marks nodes on the current inference path that have no memo
	// entry. Re-entering one of them yields Any.
	active map[*document.Object]bool
}

func newSchemaInferrer(g *tg.Graph, u *unions.Builder, doc any, maxDepth int) *schemaInferrer {
	return &schemaInferrer{
		g:        g,
		unions:   u,
		values:   newValueInferrer(g, u, maxDepth),
		refs:     newResolver(doc, maxDepth),
		maxDepth: maxDepth,
		memo:     make(map[*document.Object]tg.Handle),
		active:   make(map[*document.Object]bool),
	}
}

// inferRoot infers a whole document and attaches rootHint to the outermost
// record.
func (si *schemaInferrer) inferRoot(doc any, rootHint string) (tg.Handle, error) {
	if !hasBody(doc) {
		return tg.Handle{}, ErrEmptyInput
	}
	h, err := si.infer(doc, "", 0)
	if err != nil {
		return tg.Handle{}, err
	}
	if r, ok := si.g.Record(h); ok {
		r.AddHint(rootHint)
	}
	return h, nil
}

// infer maps one schema node to a handle. hint names a record built for
// this position.
func (si *schemaInferrer) infer(node any, hint string, depth int) (tg.Handle, error) {
	if depth >= si.maxDepth {
		return tg.Handle{}, ErrTooDeep
	}
	obj, ok := node.(*document.Object)
	if !ok {
		// true, false, null or a malformed node: no declared shape.
		return si.g.Primitive(tg.KindAny), nil
	}

	if h, ok := si.memo[obj]; ok {
		si.addHint(h, hint)
		return h, nil
	}
	if si.active[obj] {
		return si.g.Primitive(tg.KindAny), nil
	}
	si.active[obj] = true
	defer delete(si.active, obj)

	if ref, ok := stringKeyword(obj, "$ref"); ok {
		target, err := si.refs.resolve(ref)
		if err != nil {
			return tg.Handle{}, err
		}
		h, err := si.infer(target, hint, depth+1)
		if err != nil {
			return tg.Handle{}, err
		}
		si.addHint(h, PascalCase(refName(ref)))
		return h, nil
	}

	switch types := typeKeyword(obj); {
	case len(types) == 1:
		return si.inferTyped(obj, types[0], hint, depth, true)
	case len(types) > 1:
		return si.inferUnion(obj, len(types), func(i int) (tg.Handle, error) {
			return si.inferTyped(obj, types[i], hint, depth, false)
		})
	}

	if has(obj, "properties") {
		return si.inferTyped(obj, "object", hint, depth, true)
	}
	if has(obj, "items") || has(obj, "prefixItems") {
		return si.inferTyped(obj, "array", hint, depth, true)
	}
	if branches := alternatives(obj); len(branches) > 0 {
		return si.inferUnion(obj, len(branches), func(i int) (tg.Handle, error) {
			return si.infer(branches[i], hint, depth+1)
		})
	}
	if allOf, ok := schemaList(obj, "allOf"); ok {
		return si.inferAllOf(obj, allOf, hint, depth)
	}
	if v, ok := obj.Get("const"); ok {
		return si.values.infer(v, hint, depth+1)
	}
	if enum, ok := obj.Get("enum"); ok {
		if values, ok := enum.([]any); ok {
			hs := make([]tg.Handle, 0, len(values))
			for _, v := range values {
				h, err := si.values.infer(v, hint, depth+1)
				if err != nil {
					return tg.Handle{}, err
				}
				hs = append(hs, h)
			}
			return si.unions.Build(hs...), nil
		}
	}
	return si.g.Primitive(tg.KindAny), nil
}

// inferTyped builds the type for one JSON Schema type name. memoize is false
// when obj declares several types; obj then maps to the union memoized by
// inferUnion.
func (si *schemaInferrer) inferTyped(obj *document.Object, typ, hint string, depth int, memoize bool) (tg.Handle, error) {
	switch typ {
	case "integer":
		return si.g.Primitive(tg.KindInt), nil
	case "number":
		return si.g.Primitive(tg.KindFloat), nil
	case "boolean":
		return si.g.Primitive(tg.KindBool), nil
	case "string":
		return si.g.Primitive(tg.KindString), nil
	case "null":
		return si.g.Primitive(tg.KindNull), nil
	case "array":
		return si.inferArray(obj, hint, depth, memoize)
	case "object":
		return si.inferRecord(obj, hint, depth, memoize)
	default:
		return si.g.Primitive(tg.KindAny), nil
	}
}

func (si *schemaInferrer) inferArray(obj *document.Object, hint string, depth int, memoize bool) (tg.Handle, error) {
	arr := &tg.Array{Elem: si.g.Primitive(tg.KindAny)}
	h := si.g.Insert(arr)
	if memoize {
		si.memo[obj] = h
	}

	var elems []any
	if prefix, ok := schemaList(obj, "prefixItems"); ok {
		elems = append(elems, prefix...)
	}
	if items, ok := obj.Get("items"); ok {
		if tuple, ok := items.([]any); ok {
			elems = append(elems, tuple...)
		} else {
			elems = append(elems, items)
		}
	}
	if len(elems) == 0 {
		return h, nil
	}

	hs := make([]tg.Handle, 0, len(elems))
	for _, e := range elems {
		eh, err := si.infer(e, hint, depth+1)
		if err != nil {
			return tg.Handle{}, err
		}
		hs = append(hs, eh)
	}
	arr.Elem = si.unions.Build(hs...)
	return h, nil
}

func (si *schemaInferrer) inferRecord(obj *document.Object, hint string, depth int, memoize bool) (tg.Handle, error) {
	props, ok := properties(obj)
	if !ok {
		return si.g.Primitive(tg.KindAny), nil
	}

	r := tg.NewRecord()
	r.AddHint(hint)
	if title, ok := stringKeyword(obj, "title"); ok {
		r.AddHint(PascalCase(title))
	}
	h := si.g.Insert(r)
	if memoize {
		si.memo[obj] = h
	}

	for p := props.Oldest(); p != nil; p = p.Next() {
		fh, err := si.infer(p.Value, PascalCase(p.Key)+SchemaHintSuffix, depth+1)
		if err != nil {
			return tg.Handle{}, err
		}
		r.Fields.Set(p.Key, fh)
	}
	return h, nil
}

// inferUnion builds the n alternatives of obj into one type. A placeholder
// union is memoized for obj first, so an alternative referring back to obj
// gets the union itself. When fewer than two members survive, references to
// the placeholder are rewritten to the result.
func (si *schemaInferrer) inferUnion(obj *document.Object, n int, member func(i int) (tg.Handle, error)) (tg.Handle, error) {
	placeholder := si.g.Insert(&tg.Union{})
	si.memo[obj] = placeholder

	hs := make([]tg.Handle, 0, n)
	for i := range n {
		h, err := member(i)
		if err != nil {
			return tg.Handle{}, err
		}
		hs = append(hs, h)
	}

	h := si.unions.Fill(placeholder, hs...)
	if h != placeholder {
		si.memo[obj] = h
		si.replaceRefs(placeholder, h)
	}
	return h, nil
}

// replaceRefs points every reference to from at to instead. Union members
// made equal by the rewrite are kept once.
func (si *schemaInferrer) replaceRefs(from, to tg.Handle) {
	for _, n := range si.g.All() {
		switch n := n.(type) {
		case *tg.Record:
			for p := n.Fields.Oldest(); p != nil; p = p.Next() {
				if p.Value == from {
					p.Value = to
				}
			}
		case *tg.Array:
			if n.Elem == from {
				n.Elem = to
			}
		case *tg.Union:
			changed := false
			for i, m := range n.Members {
				if m == from {
					n.Members[i] = to
					changed = true
				}
			}
			if changed {
				n.Members = si.unions.Dedup(n.Members)
			}
		}
	}
}

// inferAllOf merges the properties of every object branch into one record.
// Without any object branch the first branch stands for the whole node.
func (si *schemaInferrer) inferAllOf(obj *document.Object, allOf []any, hint string, depth int) (tg.Handle, error) {
	var parts []*document.Object
	for _, b := range allOf {
		target, err := si.deref(b, depth)
		if err != nil {
			return tg.Handle{}, err
		}
		if t, ok := target.(*document.Object); ok {
			if _, ok := properties(t); ok {
				parts = append(parts, t)
			}
		}
	}
	if len(parts) == 0 {
		if len(allOf) == 0 {
			return si.g.Primitive(tg.KindAny), nil
		}
		return si.infer(allOf[0], hint, depth+1)
	}

	r := tg.NewRecord()
	r.AddHint(hint)
	if title, ok := stringKeyword(obj, "title"); ok {
		r.AddHint(PascalCase(title))
	}
	h := si.g.Insert(r)
	si.memo[obj] = h

	for _, part := range parts {
		if title, ok := stringKeyword(part, "title"); ok {
			r.AddHint(PascalCase(title))
		}
		props, _ := properties(part)
		for p := props.Oldest(); p != nil; p = p.Next() {
			fh, err := si.infer(p.Value, PascalCase(p.Key)+SchemaHintSuffix, depth+1)
			if err != nil {
				return tg.Handle{}, err
			}
			if prev, ok := r.Fields.Get(p.Key); ok {
				fh = si.unions.Build(prev, fh)
			}
			r.Fields.Set(p.Key, fh)
		}
	}
	return h, nil
}

// deref follows a chain of $ref nodes.
func (si *schemaInferrer) deref(node any, depth int) (any, error) {
	for i := depth; i < si.maxDepth; i++ {
		obj, ok := node.(*document.Object)
		if !ok {
			return node, nil
		}
		ref, ok := stringKeyword(obj, "$ref")
		if !ok {
			return node, nil
		}
		target, err := si.refs.resolve(ref)
		if err != nil {
			return nil, err
		}
		node = target
	}
	return nil, ErrTooDeep
}

// addHint names the record at h. A union with exactly one record member,
// such as a nullable object, passes the hint to that record.
func (si *schemaInferrer) addHint(h tg.Handle, hint string) {
	if r, ok := si.g.Record(h); ok {
		r.AddHint(hint)
		return
	}
	u, ok := si.g.Union(h)
	if !ok {
		return
	}
	var only *tg.Record
	for _, m := range u.Members {
		if r, ok := si.g.Record(m); ok {
			if only != nil {
				return
			}
			only = r
		}
	}
	if only != nil {
		only.AddHint(hint)
	}
}

// typeKeyword returns the declared type names; "type" may be a string or a
// list of strings.
func typeKeyword(obj *document.Object) []string {
	v, ok := obj.Get("type")
	if !ok {
		return nil
	}
	switch t := v.(type) {
	case string:
		return []string{t}
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

func properties(obj *document.Object) (*document.Object, bool) {
	v, ok := obj.Get("properties")
	if !ok {
		return nil, false
	}
	props, ok := v.(*document.Object)
	if !ok || props.Len() == 0 {
		return nil, false
	}
	return props, true
}

func alternatives(obj *document.Object) []any {
	var out []any
	for _, k := range []string{"anyOf", "oneOf"} {
		if list, ok := schemaList(obj, k); ok {
			out = append(out, list...)
		}
	}
	return out
}

func schemaList(obj *document.Object, key string) ([]any, bool) {
	v, ok := obj.Get(key)
	if !ok {
		return nil, false
	}
	list, ok := v.([]any)
	return list, ok
}

func has(obj *document.Object, key string) bool {
	_, ok := obj.Get(key)
	return ok
}
