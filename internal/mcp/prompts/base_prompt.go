package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleGuide serves the tool usage guide. The optimizer defaults it quotes
// come from the server configuration.
func HandleGuide(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		var sb strings.Builder

		sb.WriteString("# json2types Tool Guide\n\n")

		// --- Tool Decision Table ---
		sb.WriteString("## Which Tool\n\n")
		sb.WriteString("| You have | Tool | Argument |\n")
		sb.WriteString("|----------|------|----------|\n")
		sb.WriteString("| One or more JSON/YAML documents | `infer_from_samples` | `samples` |\n")
		sb.WriteString("| A single JSON Schema | `infer_from_schema` | `schema` |\n")
		sb.WriteString("| An object of named schemas (e.g. OpenAPI `components.schemas`) | `infer_from_schema_set` | `schemas` |\n")

		sb.WriteString("\n**Key rules**:\n")
		sb.WriteString("- Pass several samples as concatenated or newline-delimited JSON in one `samples` string\n")
		sb.WriteString("- Use `select` (a jq expression) to pick the interesting part, e.g. `.data.items[]` or `.components.schemas`\n")
		sb.WriteString("- Set `root_name` so the root record gets a meaningful name\n")
		sb.WriteString("- Only local `$ref` pointers are followed; a dangling one fails `infer_from_schema` and skips the entry in a schema set\n")

		// --- Optimizer ---
		sb.WriteString("\n## Optimizer Passes\n")
		sb.WriteString(fmt.Sprintf("- `merge_similar` (default %t): collapse records with identical fields\n", cfg.Optimize.MergeSimilar))
		sb.WriteString(fmt.Sprintf("- `merge_by_name` (default %t): collapse records that share a name, keeping the first record's fields\n", cfg.Optimize.MergeByName))
		sb.WriteString(fmt.Sprintf("- `merge_unions` (default %t): collapse unions with the same members\n", cfg.Optimize.MergeUnions))
		sb.WriteString("- `merge_by_name` can drop fields seen only in later samples; pass `verify: true` to find out\n")

		// --- Output ---
		sb.WriteString("\n## Output\n")
		sb.WriteString("- `text`: compact listing, read this first\n")
		sb.WriteString("- `json_schema`: draft 2020-12, one `$defs` entry per record, every field required\n")
		sb.WriteString("- `stats`: node counts of the final graph\n")
		sb.WriteString("- `result_uri`: re-read the full result later without re-running inference\n")

		return &sdkmcp.GetPromptResult{
			Description: "Guide to the json2types tools",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
