package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	// Prompt 1: Tool usage guide
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "json2types_guide",
		Description: "Guide to picking an infer tool and optimizer passes, with the output shape explained.",
	}, HandleGuide(cfg))

	// Prompt 2: Derive types for code generation
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "derive_types",
		Description: "RECOMMENDED: Derive named types from samples or schemas and turn them into source code type declarations.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "source",
				Description: "What you have: samples (default), schema, or schema-set",
				Required:    false,
			},
			{
				Name:        "language",
				Description: "Target language for the generated declarations (e.g., 'Go', 'TypeScript')",
				Required:    false,
			},
		},
	}, HandleDeriveTypes(cfg))
}
