// Package document decodes JSON and YAML text into ordered value trees.
//
// A decoded tree uses nil, bool, string, json.Number, float64, []any and
// *Object. Objects keep their keys in document order, which the inferrers
// rely on to reproduce first-seen field order.
package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Object is an ordered JSON object.
type Object = orderedmap.OrderedMap[string, any]

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return orderedmap.New[string, any]()
}

// maxDecodeDepth matches the nesting limit of encoding/json.
const maxDecodeDepth = 10000

// ErrTooDeep is returned when a document nests deeper than the decoder allows.
var ErrTooDeep = errors.New("document nesting exceeds decoder limit")

// DecodeJSON decodes exactly one JSON value from data.
func DecodeJSON(data []byte) (any, error) {
	values, err := DecodeJSONStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	switch len(values) {
	case 0:
		return nil, fmt.Errorf("invalid JSON: empty input")
	case 1:
		return values[0], nil
	default:
		return nil, fmt.Errorf("invalid JSON: %d top-level values, expected one", len(values))
	}
}

// DecodeJSONStream decodes a sequence of concatenated or newline-delimited
// JSON values.
func DecodeJSONStream(r io.Reader) ([]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var out []any
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		v, err := decodeFrom(dec, tok, 0)
		if err != nil {
			return nil, fmt.Errorf("invalid JSON: %w", err)
		}
		out = append(out, v)
	}
}

func decodeValue(dec *json.Decoder, depth int) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFrom(dec, tok, depth)
}

func decodeFrom(dec *json.Decoder, tok json.Token, depth int) (any, error) {
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	if depth >= maxDecodeDepth {
		return nil, ErrTooDeep
	}

	switch delim {
	case '{':
		obj := NewObject()
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", kt)
			}
			v, err := decodeValue(dec, depth+1)
			if err != nil {
				return nil, err
			}
			obj.Set(key, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil

	case '[':
		arr := make([]any, 0)
		for dec.More() {
			v, err := decodeValue(dec, depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil

	default:
		return nil, fmt.Errorf("unexpected delimiter %q", delim)
	}
}

// Lookup returns the value stored under key when v is an object.
func Lookup(v any, key string) (any, bool) {
	switch o := v.(type) {
	case *Object:
		return o.Get(key)
	case map[string]any:
		val, ok := o[key]
		return val, ok
	default:
		return nil, false
	}
}
