package tools

import (
	"context"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/json2types/internal/input"
	"github.com/usestring/json2types/internal/pipeline"
	"github.com/usestring/json2types/pkg/document"
	"github.com/usestring/json2types/pkg/types"
)

// InferFromSamplesInput is the input for infer_from_samples.
type InferFromSamplesInput struct {
	Samples  string                 `json:"samples" jsonschema:"Sample documents: one JSON value, several concatenated or newline-delimited JSON values, or a YAML stream"`
	Format   string                 `json:"format,omitempty" jsonschema:"Input format: json, yaml or a media type such as application/json (default: detected)"`
	Select   string                 `json:"select,omitempty" jsonschema:"jq expression applied to every sample, e.g. .data.items[]"`
	RootName string                 `json:"root_name,omitempty" jsonschema:"Name for the root type, e.g. order"`
	Optimize *types.OptimizeOptions `json:"optimize,omitempty" jsonschema:"Optimizer passes (default: merge_by_name only)"`
	Verify   bool                   `json:"verify,omitempty" jsonschema:"Validate every sample against the inferred schema and report failures"`
}

// InferFromSchemaInput is the input for infer_from_schema.
type InferFromSchemaInput struct {
	Schema   string                 `json:"schema" jsonschema:"One JSON Schema document. Only local $ref pointers are followed."`
	Format   string                 `json:"format,omitempty" jsonschema:"Input format: json, yaml or a media type such as application/json (default: detected)"`
	Select   string                 `json:"select,omitempty" jsonschema:"jq expression picking the schema out of a larger document, e.g. .components.schemas.User"`
	RootName string                 `json:"root_name,omitempty" jsonschema:"Name for the root type"`
	Optimize *types.OptimizeOptions `json:"optimize,omitempty" jsonschema:"Optimizer passes (default: merge_by_name only)"`
}

// InferFromSchemaSetInput is the input for infer_from_schema_set.
type InferFromSchemaSetInput struct {
	Schemas  string                 `json:"schemas" jsonschema:"JSON object mapping schema names to schemas, given inline or as JSON text"`
	Format   string                 `json:"format,omitempty" jsonschema:"Input format: json, yaml or a media type such as application/json (default: detected)"`
	Select   string                 `json:"select,omitempty" jsonschema:"jq expression picking the set out of a larger document, e.g. .components.schemas"`
	RootName string                 `json:"root_name,omitempty" jsonschema:"Name for the root record holding one field per schema"`
	Optimize *types.OptimizeOptions `json:"optimize,omitempty" jsonschema:"Optimizer passes (default: merge_by_name only)"`
}

// ToolInferFromSamples infers types from sample documents.
func ToolInferFromSamples(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferFromSamplesInput) (*sdkmcp.CallToolResult, types.InferOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, in InferFromSamplesInput) (*sdkmcp.CallToolResult, types.InferOutput, error) {
		r, err := d.request(pipeline.ModeSamples, "samples", in.Samples, in.Format, in.Select, in.RootName, in.Optimize)
		if err != nil {
			return nil, types.InferOutput{}, err
		}
		r.Verify = in.Verify
		return d.run(ctx, r, in.Samples)
	}
}

// ToolInferFromSchema infers types from one JSON Schema document.
func ToolInferFromSchema(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferFromSchemaInput) (*sdkmcp.CallToolResult, types.InferOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, in InferFromSchemaInput) (*sdkmcp.CallToolResult, types.InferOutput, error) {
		r, err := d.request(pipeline.ModeSchema, "schema", in.Schema, in.Format, in.Select, in.RootName, in.Optimize)
		if err != nil {
			return nil, types.InferOutput{}, err
		}
		return d.run(ctx, r, in.Schema)
	}
}

// ToolInferFromSchemaSet infers types from a set of named schemas.
func ToolInferFromSchemaSet(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input InferFromSchemaSetInput) (*sdkmcp.CallToolResult, types.InferOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, in InferFromSchemaSetInput) (*sdkmcp.CallToolResult, types.InferOutput, error) {
		r, err := d.request(pipeline.ModeSchemaSet, "schemas", in.Schemas, in.Format, in.Select, in.RootName, in.Optimize)
		if err != nil {
			return nil, types.InferOutput{}, err
		}
		return d.run(ctx, r, in.Schemas)
	}
}

// request validates the common tool arguments and builds a pipeline request.
func (d *Deps) request(mode pipeline.Mode, field, text, format, sel, rootName string, opt *types.OptimizeOptions) (pipeline.Request, error) {
	if strings.TrimSpace(text) == "" {
		return pipeline.Request{}, ErrInvalidInput(field + " is required")
	}
	f, err := document.ParseFormat(format)
	if err != nil {
		return pipeline.Request{}, ErrInvalidInput(err.Error())
	}
	return pipeline.Request{
		Mode:     mode,
		Files:    []input.File{{Name: field, Data: []byte(text)}},
		Format:   f,
		Select:   sel,
		RootName: rootName,
		Optimize: optimizeConfig(d.Config.Optimize(), opt),
		MaxDepth: d.Config.MaxDepth,
	}, nil
}

func (d *Deps) run(ctx context.Context, r pipeline.Request, text string) (*sdkmcp.CallToolResult, types.InferOutput, error) {
	out, err := d.Infer(ctx, r, text)
	if err != nil {
		return nil, types.InferOutput{}, WrapInferError(err)
	}
	return nil, out, nil
}
