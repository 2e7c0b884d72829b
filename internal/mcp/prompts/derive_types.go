package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleDeriveTypes implements the type derivation workflow.
func HandleDeriveTypes(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		source := "samples"
		language := "Go"
		if args := req.Params.Arguments; args != nil {
			if v := strings.TrimSpace(args["source"]); v != "" {
				source = v
			}
			if v := strings.TrimSpace(args["language"]); v != "" {
				language = v
			}
		}

		tool, arg := "infer_from_samples", "samples"
		switch source {
		case "schema":
			tool, arg = "infer_from_schema", "schema"
		case "schema-set", "schema_set":
			tool, arg = "infer_from_schema_set", "schemas"
		}

		var sb strings.Builder

		sb.WriteString("# Derive Types\n\n")
		sb.WriteString(fmt.Sprintf("You are turning %s into %s type declarations. ", source, language))
		sb.WriteString("The inference tool does the structural work; your job is naming, review and code generation.\n\n")

		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString(fmt.Sprintf("1. **Infer** - call `%s` with the input in `%s` and a `root_name`\n", tool, arg))
		if source == "samples" {
			sb.WriteString("   - Include every sample variant you have; disagreeing samples become unions\n")
			sb.WriteString("   - Pass `verify: true` to confirm every sample fits the result\n")
		}
		sb.WriteString("2. **Review the `text` listing** - check record names and union members\n")
		sb.WriteString("   - Records named `TypeN` had no name hint; give them a name in the generated code\n")
		sb.WriteString("   - Names ending in a digit are collisions between different records with the same hint\n")
		if cfg.Optimize.MergeByName {
			sb.WriteString("   - `merge_by_name` is on: records sharing a name keep only the first one's fields\n")
		} else {
			sb.WriteString("   - `merge_by_name` is off: try it if you see many near-duplicate records\n")
		}
		sb.WriteString(fmt.Sprintf("3. **Generate** - write one %s declaration per record, following `json_schema` for field types\n\n", language))

		sb.WriteString("## Suggested Tools\n\n")
		sb.WriteString("```\n")
		sb.WriteString(fmt.Sprintf("%s(%s=\"...\", root_name=\"<name>\")\n", tool, arg))
		sb.WriteString(fmt.Sprintf("%s(%s=\"...\", root_name=\"<name>\", optimize={merge_similar: true})\n", tool, arg))
		sb.WriteString("```\n\n")

		sb.WriteString("## If Things Go Wrong\n\n")
		sb.WriteString("- **EMPTY_INPUT?** The input has no shape keywords or no samples; check `select`\n")
		sb.WriteString("- **DANGLING_REFERENCE?** A `$ref` points outside the document; inline the target or use a schema set\n")
		sb.WriteString("- **PARSE_ERROR?** A schema-set entry is not valid JSON\n")
		sb.WriteString("- **verify failures?** Rerun with `optimize={merge_by_name: false}`\n")

		return &sdkmcp.GetPromptResult{
			Description: "Guide for deriving type declarations",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
