package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math/big"
	"slices"
	"strconv"
	"strings"

	"github.com/itchyny/gojq"
)

// Selector applies a jq expression to samples, replacing each sample by the
// values the expression yields. gojq works on plain maps, so objects coming
// out of a selection have their keys in sorted order.
type Selector struct {
	code *gojq.Code
}

// NewSelector parses and compiles expression.
func NewSelector(expression string) (*Selector, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}
	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}
	return &Selector{code: code}, nil
}

// Apply runs the expression over every sample and concatenates the results.
func (s *Selector) Apply(samples []any) ([]any, error) {
	out := make([]any, 0, len(samples))
	for i, sample := range samples {
		iter := s.code.Run(ToPlain(sample))
		for {
			v, ok := iter.Next()
			if !ok {
				break
			}
			if err, isErr := v.(error); isErr {
				var halt *gojq.HaltError
				if errors.As(err, &halt) && halt.Value() == nil {
					break
				}
				return nil, fmt.Errorf("sample[%d]: %s", i, formatJQError(err))
			}
			out = append(out, FromPlain(v))
		}
	}
	return out, nil
}

// ToPlain converts an ordered tree into the map/slice form gojq accepts.
// json.Number becomes int when it fits, float64 otherwise.
func ToPlain(v any) any {
	switch val := v.(type) {
	case *Object:
		m := make(map[string]any, val.Len())
		for p := val.Oldest(); p != nil; p = p.Next() {
			m[p.Key] = ToPlain(p.Value)
		}
		return m
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = ToPlain(e)
		}
		return out
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return int(i)
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	default:
		return v
	}
}

// FromPlain converts a plain map/slice tree back into an ordered tree. Map
// keys are taken in sorted order; integers become json.Number.
func FromPlain(v any) any {
	switch val := v.(type) {
	case map[string]any:
		obj := NewObject()
		for _, k := range slices.Sorted(maps.Keys(val)) {
			obj.Set(k, FromPlain(val[k]))
		}
		return obj
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = FromPlain(e)
		}
		return out
	case int:
		return json.Number(strconv.Itoa(val))
	case *big.Int:
		return json.Number(val.String())
	default:
		return v
	}
}

func formatJQError(err error) string {
	msg := err.Error()
	// gojq prefixes some messages with the full input value; keep them short.
	if i := strings.Index(msg, ": {"); i > 0 && len(msg) > 200 {
		msg = msg[:i]
	}
	return msg
}
