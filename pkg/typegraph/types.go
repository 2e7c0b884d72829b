// Package typegraph provides the arena that owns every inferred type node.
//
// Nodes are addressed by Handle values. Cross references between nodes are
// always handles, never owned values, so recursive and shared structure
// (including cycles) is representable without duplication.
package typegraph

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind identifies a Type variant.
type Kind uint8

// Primitive kinds come first so they can index the primitive cache.
const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindString
	KindNull
	KindAny
	KindArray
	KindRecord
	KindUnion
)

// numPrimitives is the number of primitive kinds.
const numPrimitives = int(KindAny) + 1

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	case KindNull:
		return "null"
	case KindAny:
		return "any"
	case KindArray:
		return "array"
	case KindRecord:
		return "record"
	case KindUnion:
		return "union"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// IsPrimitive reports whether k is one of the leaf kinds.
func (k Kind) IsPrimitive() bool {
	return int(k) < numPrimitives
}

// Type is a node stored in a Graph. The set of implementations is closed:
// Primitive, *Array, *Record and *Union.
type Type interface {
	Kind() Kind
	typeNode() // marker method restricting implementations to this package
}

// Primitive is a leaf type. A graph holds at most one node per primitive kind.
type Primitive struct {
	K Kind
}

func (p Primitive) Kind() Kind { return p.K }
func (Primitive) typeNode()    {}

// Array is a homogeneous sequence. Elem may itself be a Union.
type Array struct {
	Elem Handle
}

func (*Array) Kind() Kind { return KindArray }
func (*Array) typeNode()  {}

// Fields maps field names to handles in first-seen order.
type Fields = orderedmap.OrderedMap[string, Handle]

// NewFields returns an empty field map.
func NewFields() *Fields {
	return orderedmap.New[string, Handle]()
}

// Record is an object shape.
type Record struct {
	Fields    *Fields
	NameHints NameHints
}

// NewRecord returns a record with no fields and no hints.
func NewRecord() *Record {
	return &Record{Fields: NewFields(), NameHints: NameHints{}}
}

func (*Record) Kind() Kind { return KindRecord }
func (*Record) typeNode()  {}

// Union is a position where incompatible shapes were observed. Members are
// kept in first-seen order and are never unions themselves.
type Union struct {
	Members []Handle
}

func (*Union) Kind() Kind { return KindUnion }
func (*Union) typeNode()  {}

// Schema is the result of one inference run.
type Schema struct {
	Graph *Graph
	Root  Handle
}

// RootType resolves the root handle.
func (s *Schema) RootType() Type {
	return s.Graph.Resolve(s.Root)
}
