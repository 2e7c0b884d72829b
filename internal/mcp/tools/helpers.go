// Package tools contains the MCP tool implementations for json2types.
package tools

import (
	"fmt"

	"github.com/usestring/json2types/internal/pipeline"
	"github.com/usestring/json2types/pkg/optimize"
	"github.com/usestring/json2types/pkg/types"
)

// MIME type constant.
const MimeJSON = "application/json"

// optimizeConfig overlays the options a caller set on base.
func optimizeConfig(base optimize.Config, o *types.OptimizeOptions) optimize.Config {
	if o == nil {
		return base
	}
	if o.MergeSimilar != nil {
		base.MergeSimilar = *o.MergeSimilar
	}
	if o.MergeByName != nil {
		base.MergeByName = *o.MergeByName
	}
	if o.MergeUnions != nil {
		base.MergeUnions = *o.MergeUnions
	}
	return base
}

// toOutput converts a pipeline result to the tool output shape.
func toOutput(res *pipeline.Result) (types.InferOutput, error) {
	schema, err := types.ToAny(res.JSONSchema)
	if err != nil {
		return types.InferOutput{}, fmt.Errorf("converting schema: %w", err)
	}
	return types.InferOutput{
		JSONSchema: schema,
		Text:       res.Text,
		Stats:      res.Stats,
		Verify:     res.Verify.Summary(),
	}, nil
}
