// Package types provides the shared result types of json2types runs.
// They are used by both the CLI's JSON output and the MCP tools, and are
// designed for external consumption.
package types

import (
	"encoding/json"

	tg "github.com/usestring/json2types/pkg/typegraph"
)

// ToAny round-trips a typed value through JSON to produce an untyped any.
// Use this when a tool output field must be any (instead of json.RawMessage)
// to satisfy the MCP SDK's schema validation.
func ToAny(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// OptimizeOptions selects optimizer passes. A nil field keeps the server or
// CLI default.
type OptimizeOptions struct {
	MergeSimilar *bool `json:"merge_similar,omitempty" jsonschema:"Collapse structurally equal records"`
	MergeByName  *bool `json:"merge_by_name,omitempty" jsonschema:"Collapse records sharing a name hint, keeping the first record's fields (default: true)"`
	MergeUnions  *bool `json:"merge_unions,omitempty" jsonschema:"Collapse unions with the same member set"`
}

// InferOutput is the machine-readable result of one inference run.
type InferOutput struct {
	// JSONSchema is the rendered draft 2020-12 schema.
	JSONSchema any `json:"json_schema"`
	// Text is the plain listing of the root type and every named record.
	Text  string   `json:"text"`
	Stats tg.Stats `json:"stats"`
	// ResultURI addresses the cached result as an MCP resource.
	ResultURI string         `json:"result_uri,omitempty"`
	Cached    bool           `json:"cached,omitempty"`
	Verify    *VerifySummary `json:"verify,omitempty"`
}

// VerifySummary reports how the input samples fared against the schema.
type VerifySummary struct {
	Checked  int             `json:"checked"`
	Failures []VerifyFailure `json:"failures,omitzero"`
}

// VerifyFailure lists the validation errors of one sample.
type VerifyFailure struct {
	Index  int      `json:"index"`
	Errors []string `json:"errors"`
}
