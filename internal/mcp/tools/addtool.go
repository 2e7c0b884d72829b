package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool registers a tool after checking its output type with
// CheckOutputSchema. A bad output type panics at registration instead of
// failing every call.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	if err := CheckOutputSchema[Out](); err != nil {
		panic(fmt.Sprintf("tool %q: %v", t.Name, err))
	}
	sdkmcp.AddTool(srv, t, h)
}

// CheckOutputSchema reports the ways values of T would be rejected by the
// output schema the SDK derives from T:
//
//   - json.RawMessage fields are described as integer arrays but marshal as
//     arbitrary JSON; use any and types.ToAny instead.
//   - nil slices marshal as null where the schema asks for an array; tag them
//     omitzero.
//
// The untyped any is always accepted. Failures of schema derivation itself are
// left for the SDK to report.
func CheckOutputSchema[T any]() error {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return nil
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	var errs []error
	for _, path := range rawMessagePaths(rt) {
		errs = append(errs, fmt.Errorf("%s: json.RawMessage at %s; use any", rt, path))
	}
	if err := checkZeroValue(rt); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func checkZeroValue(rt reflect.Type) error {
	schema, err := jsonschema.ForType(rt, &jsonschema.ForOptions{})
	if err != nil {
		return nil
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return nil
	}
	data, err := json.Marshal(reflect.Zero(rt).Interface())
	if err != nil {
		return nil
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	if err := resolved.Validate(&v); err != nil {
		return fmt.Errorf("%s: zero value %s fails its schema: %w; tag nil slices omitzero", rt, data, err)
	}
	return nil
}

var rawMessageType = reflect.TypeFor[json.RawMessage]()

// rawMessagePaths lists the dotted paths under t that hold a json.RawMessage.
// Slice elements appear as "[]" and map values as "[value]".
func rawMessagePaths(t reflect.Type) []string {
	var found []string
	onPath := make(map[reflect.Type]bool)

	var walk func(t reflect.Type, path []string)
	walk = func(t reflect.Type, path []string) {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t == rawMessageType {
			found = append(found, strings.Join(path, "."))
			return
		}
		if onPath[t] {
			return
		}
		onPath[t] = true
		defer delete(onPath, t)

		switch t.Kind() {
		case reflect.Struct:
			for i := range t.NumField() {
				if f := t.Field(i); f.IsExported() {
					walk(f.Type, append(path[:len(path):len(path)], f.Name))
				}
			}
		case reflect.Slice, reflect.Array:
			walk(t.Elem(), append(path[:len(path):len(path)], "[]"))
		case reflect.Map:
			walk(t.Elem(), append(path[:len(path):len(path)], "[value]"))
		}
	}
	walk(t, nil)
	return found
}
