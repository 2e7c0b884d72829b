package infer

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tg "github.com/usestring/json2types/pkg/typegraph"
)

func quiet() *Options {
	return &Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

func TestFromSchema_Object(t *testing.T) {
	doc := decode(t, `{
		"title": "user record",
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"age": {"type": "integer"},
			"score": {"type": "number"},
			"active": {"type": "boolean"},
			"address": {"type": "object", "properties": {"city": {"type": "string"}}},
			"tags": {"type": "array", "items": {"type": "string"}},
			"extra": {}
		}
	}`)
	s, err := FromSchema(doc, &Options{RootName: "user"})
	require.NoError(t, err)

	root, ok := s.Graph.Record(s.Root)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "age", "score", "active", "address", "tags", "extra"}, fieldNames(root))
	assert.Equal(t, []string{"User", "UserRecord"}, root.NameHints.Sorted())

	assert.Equal(t, tg.KindString, s.Graph.Kind(field(t, s, s.Root, "name")))
	assert.Equal(t, tg.KindInt, s.Graph.Kind(field(t, s, s.Root, "age")))
	assert.Equal(t, tg.KindFloat, s.Graph.Kind(field(t, s, s.Root, "score")))
	assert.Equal(t, tg.KindBool, s.Graph.Kind(field(t, s, s.Root, "active")))
	assert.Equal(t, tg.KindAny, s.Graph.Kind(field(t, s, s.Root, "extra")))

	addr, ok := s.Graph.Record(field(t, s, s.Root, "address"))
	require.True(t, ok)
	assert.Equal(t, []string{"AddressSchema"}, addr.NameHints.Sorted())

	tags, ok := s.Graph.Resolve(field(t, s, s.Root, "tags")).(*tg.Array)
	require.True(t, ok)
	assert.Equal(t, s.Graph.Primitive(tg.KindString), tags.Elem)
}

func TestFromSchema_EmptyBody(t *testing.T) {
	for _, text := range []string{`{}`, `{"description": "nothing"}`, `true`, `null`} {
		t.Run(text, func(t *testing.T) {
			_, err := FromSchema(decode(t, text), nil)
			assert.ErrorIs(t, err, ErrEmptyInput)
		})
	}
}

func TestFromSchema_ObjectWithoutPropertiesIsAny(t *testing.T) {
	s, err := FromSchema(decode(t, `{"type": "object"}`), nil)
	require.NoError(t, err)
	assert.Equal(t, s.Graph.Primitive(tg.KindAny), s.Root)
}

func TestFromSchema_LocalReference(t *testing.T) {
	doc := decode(t, `{
		"type": "object",
		"properties": {
			"home": {"$ref": "#/$defs/Address"},
			"work": {"$ref": "#/$defs/Address"}
		},
		"$defs": {
			"Address": {"type": "object", "properties": {"street": {"type": "string"}}}
		}
	}`)
	s, err := FromSchema(doc, nil)
	require.NoError(t, err)

	home := field(t, s, s.Root, "home")
	assert.Equal(t, home, field(t, s, s.Root, "work"), "both references reuse the same node")

	r, ok := s.Graph.Record(home)
	require.True(t, ok)
	assert.Equal(t, []string{"Address", "HomeSchema", "WorkSchema"}, r.NameHints.Sorted())
	assert.Equal(t, tg.KindString, s.Graph.Kind(field(t, s, home, "street")))
}

func TestFromSchema_PointerEscapes(t *testing.T) {
	doc := decode(t, `{
		"type": "object",
		"properties": {"x": {"$ref": "#/definitions/a~1b%20c"}},
		"definitions": {"a/b c": {"type": "integer"}}
	}`)
	s, err := FromSchema(doc, nil)
	require.NoError(t, err)
	assert.Equal(t, tg.KindInt, s.Graph.Kind(field(t, s, s.Root, "x")))
}

func TestFromSchema_RecursiveReference(t *testing.T) {
	doc := decode(t, `{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"children": {"type": "array", "items": {"$ref": "#"}}
		}
	}`)
	s, err := FromSchema(doc, &Options{RootName: "tree"})
	require.NoError(t, err)

	children, ok := s.Graph.Resolve(field(t, s, s.Root, "children")).(*tg.Array)
	require.True(t, ok)
	assert.Equal(t, s.Root, children.Elem)
	assert.True(t, s.Graph.Reaches(s.Root, s.Root))
}

func TestFromSchema_MutualRecursion(t *testing.T) {
	doc := decode(t, `{
		"$ref": "#/$defs/A",
		"$defs": {
			"A": {"type": "object", "properties": {"b": {"$ref": "#/$defs/B"}}},
			"B": {"type": "object", "properties": {"a": {"$ref": "#/$defs/A"}}}
		}
	}`)
	s, err := FromSchema(doc, nil)
	require.NoError(t, err)

	b := field(t, s, s.Root, "b")
	assert.Equal(t, s.Root, field(t, s, b, "a"))
}

func TestFromSchema_Anchor(t *testing.T) {
	doc := decode(t, `{
		"type": "object",
		"properties": {"id": {"$ref": "#ident"}},
		"$defs": {"Ident": {"$anchor": "ident", "type": "string"}}
	}`)
	s, err := FromSchema(doc, nil)
	require.NoError(t, err)
	assert.Equal(t, tg.KindString, s.Graph.Kind(field(t, s, s.Root, "id")))
}

func TestFromSchema_DanglingReference(t *testing.T) {
	tests := []struct {
		name string
		ref  string
	}{
		{"missing pointer", "#/$defs/missing"},
		{"missing anchor", "#nowhere"},
		{"other document", "other.json#/a"},
		{"index out of range", "#/$defs/list/3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := decode(t, `{
				"type": "object",
				"properties": {"x": {"$ref": "`+tt.ref+`"}},
				"$defs": {"list": [{"type": "string"}]}
			}`)
			_, err := FromSchema(doc, nil)

			var dangling *DanglingReferenceError
			require.True(t, errors.As(err, &dangling))
			assert.Equal(t, tt.ref, dangling.Ref)
		})
	}
}

func TestFromSchema_TypeList(t *testing.T) {
	s, err := FromSchema(decode(t, `{"type": ["string", "null"]}`), nil)
	require.NoError(t, err)

	u, ok := s.Graph.Union(s.Root)
	require.True(t, ok)
	assert.Equal(t, []tg.Handle{
		s.Graph.Primitive(tg.KindString),
		s.Graph.Primitive(tg.KindNull),
	}, u.Members)
}

func TestFromSchema_Alternatives(t *testing.T) {
	doc := decode(t, `{"anyOf": [
		{"type": "integer"},
		{"type": "string"},
		{"type": "integer"}
	]}`)
	s, err := FromSchema(doc, nil)
	require.NoError(t, err)

	u, ok := s.Graph.Union(s.Root)
	require.True(t, ok)
	assert.Len(t, u.Members, 2)
}

func TestFromSchema_NullableRecursion(t *testing.T) {
	doc := decode(t, `{
		"$ref": "#/$defs/Node",
		"$defs": {
			"Node": {
				"type": ["object", "null"],
				"properties": {
					"value": {"type": "integer"},
					"next": {"$ref": "#/$defs/Node"}
				}
			}
		}
	}`)
	s, err := FromSchema(doc, nil)
	require.NoError(t, err)

	u, ok := s.Graph.Union(s.Root)
	require.True(t, ok)
	require.Len(t, u.Members, 2)
	assert.Equal(t, s.Graph.Primitive(tg.KindNull), u.Members[1])

	node, ok := s.Graph.Record(u.Members[0])
	require.True(t, ok)
	assert.True(t, node.NameHints.Has("Node"))
	assert.Equal(t, s.Root, field(t, s, u.Members[0], "next"))
	assert.Equal(t, tg.KindInt, s.Graph.Kind(field(t, s, u.Members[0], "value")))
}

func TestFromSchema_RecursionThroughAnyOf(t *testing.T) {
	doc := decode(t, `{
		"type": "object",
		"properties": {"head": {"$ref": "#/$defs/Node"}},
		"$defs": {
			"Node": {"anyOf": [
				{"type": "null"},
				{"type": "object", "properties": {"next": {"$ref": "#/$defs/Node"}}}
			]}
		}
	}`)
	s, err := FromSchema(doc, nil)
	require.NoError(t, err)

	head := field(t, s, s.Root, "head")
	u, ok := s.Graph.Union(head)
	require.True(t, ok)
	require.Len(t, u.Members, 2)
	assert.Equal(t, s.Graph.Primitive(tg.KindNull), u.Members[0])
	assert.Equal(t, head, field(t, s, u.Members[1], "next"))
	assert.True(t, s.Graph.Reaches(head, head))
}

func TestFromSchema_SelfReferenceAmongAlternatives(t *testing.T) {
	doc := decode(t, `{
		"type": "object",
		"properties": {"label": {"$ref": "#/$defs/Label"}},
		"$defs": {
			"Label": {"anyOf": [{"$ref": "#/$defs/Label"}, {"type": "string"}]}
		}
	}`)
	s, err := FromSchema(doc, nil)
	require.NoError(t, err)
	assert.Equal(t, s.Graph.Primitive(tg.KindString), field(t, s, s.Root, "label"))
}

func TestFromSchema_PlainMaps(t *testing.T) {
	var doc any
	require.NoError(t, json.Unmarshal([]byte(`{
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"address": {"type": "object", "properties": {"city": {"type": "string"}}}
		}
	}`), &doc))

	s, err := FromSchema(doc, &Options{RootName: "user"})
	require.NoError(t, err)

	root, ok := s.Graph.Record(s.Root)
	require.True(t, ok)
	assert.Equal(t, []string{"address", "name"}, fieldNames(root))
	assert.True(t, root.NameHints.Has("User"))
	assert.Equal(t, tg.KindString, s.Graph.Kind(field(t, s, s.Root, "name")))
	assert.Equal(t, tg.KindString, s.Graph.Kind(field(t, s, field(t, s, s.Root, "address"), "city")))
}

func TestFromSchema_AllOfMergesProperties(t *testing.T) {
	doc := decode(t, `{
		"allOf": [
			{"$ref": "#/$defs/Base"},
			{"type": "object", "properties": {"extra": {"type": "boolean"}}}
		],
		"$defs": {
			"Base": {"title": "base", "type": "object", "properties": {"id": {"type": "integer"}}}
		}
	}`)
	s, err := FromSchema(doc, nil)
	require.NoError(t, err)

	r, ok := s.Graph.Record(s.Root)
	require.True(t, ok)
	assert.Equal(t, []string{"id", "extra"}, fieldNames(r))
	assert.True(t, r.NameHints.Has("Base"))
}

func TestFromSchema_EnumAndConst(t *testing.T) {
	s, err := FromSchema(decode(t, `{"enum": ["a", "b"]}`), nil)
	require.NoError(t, err)
	assert.Equal(t, s.Graph.Primitive(tg.KindString), s.Root)

	s, err = FromSchema(decode(t, `{"enum": [1, "a", null]}`), nil)
	require.NoError(t, err)
	u, ok := s.Graph.Union(s.Root)
	require.True(t, ok)
	assert.Len(t, u.Members, 3)

	s, err = FromSchema(decode(t, `{"const": 1.5}`), nil)
	require.NoError(t, err)
	assert.Equal(t, s.Graph.Primitive(tg.KindFloat), s.Root)
}

func TestFromSchema_TupleItems(t *testing.T) {
	s, err := FromSchema(decode(t, `{"type": "array", "prefixItems": [{"type": "integer"}, {"type": "string"}]}`), nil)
	require.NoError(t, err)

	arr, ok := s.RootType().(*tg.Array)
	require.True(t, ok)
	u, ok := s.Graph.Union(arr.Elem)
	require.True(t, ok)
	assert.Len(t, u.Members, 2)
}

func TestFromSchema_DepthGuard(t *testing.T) {
	text := `{"type": "string"}`
	for range 20 {
		text = `{"type": "array", "items": ` + text + `}`
	}
	_, err := FromSchema(decode(t, text), &Options{MaxDepth: 10})
	assert.ErrorIs(t, err, ErrTooDeep)
}

func TestFromSchemaSet_SkipsEmptySchemas(t *testing.T) {
	entries := []NamedSchema{
		{Name: "Foo", Text: []byte(`{"type": "object", "properties": {"name": {"type": "string"}}}`)},
		{Name: "Bar", Text: []byte(`{}`)},
		{Name: "Baz", Text: []byte("  \n")},
	}
	s, err := FromSchemaSet(entries, quiet())
	require.NoError(t, err)

	root, ok := s.Graph.Record(s.Root)
	require.True(t, ok)
	assert.Equal(t, []string{"Foo"}, fieldNames(root))

	foo, ok := s.Graph.Record(field(t, s, s.Root, "Foo"))
	require.True(t, ok)
	assert.True(t, foo.NameHints.Has("Foo"))
	assert.Equal(t, tg.KindString, s.Graph.Kind(field(t, s, field(t, s, s.Root, "Foo"), "name")))
}

func TestFromSchemaSet_SkipsDanglingReferences(t *testing.T) {
	entries := []NamedSchema{
		{Name: "A", Text: []byte(`{"type": "object", "properties": {"b": {"$ref": "#/$defs/B"}}}`)},
		{Name: "B", Text: []byte(`{"type": "integer"}`)},
	}
	s, err := FromSchemaSet(entries, quiet())
	require.NoError(t, err)

	root, ok := s.Graph.Record(s.Root)
	require.True(t, ok)
	assert.Equal(t, []string{"B"}, fieldNames(root))
}

func TestFromSchemaSet_ResolvesLocalReferences(t *testing.T) {
	entries := []NamedSchema{
		{Name: "Order", Text: []byte(`{
			"type": "object",
			"properties": {
				"id": {"type": "integer"},
				"customer": {"$ref": "#/$defs/Customer"}
			},
			"$defs": {
				"Customer": {"type": "object", "properties": {"name": {"type": "string"}}}
			}
		}`)},
		{Name: "Customer", Text: []byte(`{"type": "object", "properties": {"name": {"type": "string"}}}`)},
	}
	s, err := FromSchemaSet(entries, quiet())
	require.NoError(t, err)

	root, ok := s.Graph.Record(s.Root)
	require.True(t, ok)
	assert.Equal(t, []string{"Order", "Customer"}, fieldNames(root))

	order := field(t, s, s.Root, "Order")
	customer := field(t, s, order, "customer")
	rec, ok := s.Graph.Record(customer)
	require.True(t, ok)
	assert.True(t, rec.NameHints.Has("Customer"))
	assert.Equal(t, tg.KindString, s.Graph.Kind(field(t, s, customer, "name")))
	assert.True(t, s.Graph.Equal(customer, field(t, s, s.Root, "Customer")))
}

func TestFromSchemaSet_ParseErrorAborts(t *testing.T) {
	entries := []NamedSchema{
		{Name: "Good", Text: []byte(`{"type": "string"}`)},
		{Name: "Broken", Text: []byte(`{"type": `)},
	}
	_, err := FromSchemaSet(entries, quiet())

	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "Broken", perr.Name)
}

func TestFromSchemaSet_AllSkipped(t *testing.T) {
	s, err := FromSchemaSet([]NamedSchema{{Name: "Only", Text: []byte(`{}`)}}, &Options{
		RootName: "models",
		Logger:   quiet().Logger,
	})
	require.NoError(t, err)

	root, ok := s.Graph.Record(s.Root)
	require.True(t, ok)
	assert.Equal(t, 0, root.Fields.Len())
	assert.True(t, root.NameHints.Has("Models"))
}

func TestNamedSchemasFromDocument(t *testing.T) {
	doc := decode(t, `{
		"Inline": {"type": "object", "properties": {"z": {"type": "string"}, "a": {"type": "integer"}}},
		"Text": "{\"type\": \"string\"}"
	}`)
	entries, err := NamedSchemasFromDocument(doc)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "Inline", entries[0].Name)
	assert.Equal(t, "Text", entries[1].Name)

	s, err := FromSchemaSet(entries, quiet())
	require.NoError(t, err)
	inline, ok := s.Graph.Record(field(t, s, s.Root, "Inline"))
	require.True(t, ok)
	assert.Equal(t, []string{"z", "a"}, fieldNames(inline))

	_, err = NamedSchemasFromDocument(decode(t, `{"Bad": 3}`))
	var perr *ParseError
	assert.True(t, errors.As(err, &perr))

	_, err = NamedSchemasFromDocument(decode(t, `[1]`))
	assert.Error(t, err)
}
