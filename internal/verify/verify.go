// Package verify checks that the samples a schema was inferred from validate
// against the rendered JSON Schema.
package verify

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/json2types/pkg/types"
)

const schemaURL = "inferred.json"

// Failure describes one sample that does not validate.
type Failure struct {
	Index  int      `json:"index"`
	Errors []string `json:"errors"`
}

// Report summarizes a verification run.
type Report struct {
	Checked  int       `json:"checked"`
	Failures []Failure `json:"failures,omitzero"`
}

// OK reports whether every sample validated.
func (r *Report) OK() bool {
	return len(r.Failures) == 0
}

// Summary converts r to its published form. A nil report yields nil.
func (r *Report) Summary() *types.VerifySummary {
	if r == nil {
		return nil
	}
	out := &types.VerifySummary{Checked: r.Checked}
	for _, f := range r.Failures {
		out.Failures = append(out.Failures, types.VerifyFailure{Index: f.Index, Errors: f.Errors})
	}
	return out
}

// Validator validates samples against one compiled schema.
type Validator struct {
	schema *jsonschema.Schema
}

// New compiles a rendered schema.
func New(s *invopop.Schema) (*Validator, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}
	compiled, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}
	return &Validator{schema: compiled}, nil
}

// Check validates every sample. Samples may be ordered document trees; they
// are normalized through JSON first.
func (v *Validator) Check(samples []any) (*Report, error) {
	report := &Report{Checked: len(samples)}
	for i, sample := range samples {
		value, err := normalize(sample)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		if msgs := v.validate(value); len(msgs) > 0 {
			report.Failures = append(report.Failures, Failure{Index: i, Errors: msgs})
		}
	}
	return report, nil
}

func (v *Validator) validate(value any) []string {
	err := v.schema.Validate(value)
	if err == nil {
		return nil
	}
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return []string{err.Error()}
	}
	byPath := make(map[string][]string)
	collectErrors(verr, byPath)

	var out []string
	for _, path := range slices.Sorted(maps.Keys(byPath)) {
		seen := make(map[string]bool)
		for _, msg := range byPath[path] {
			if seen[msg] {
				continue
			}
			seen[msg] = true
			if path != "" {
				msg = path + ": " + msg
			}
			out = append(out, msg)
		}
	}
	if len(out) == 0 {
		out = []string{err.Error()}
	}
	return out
}

var printer = message.NewPrinter(language.English)

// collectErrors gathers leaf errors by instance location.
func collectErrors(err *jsonschema.ValidationError, byPath map[string][]string) {
	path := ""
	if len(err.InstanceLocation) > 0 {
		path = "/" + strings.Join(err.InstanceLocation, "/")
	}
	if err.ErrorKind != nil && len(err.Causes) == 0 {
		msg := err.ErrorKind.LocalizedString(printer)
		if !strings.HasPrefix(msg, "$ref ") && !strings.HasPrefix(msg, "doesn't validate with") {
			byPath[path] = append(byPath[path], msg)
		}
	}
	for _, cause := range err.Causes {
		collectErrors(cause, byPath)
	}
}

func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jsonschema.UnmarshalJSON(bytes.NewReader(data))
}
