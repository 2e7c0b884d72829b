package mcpsrv

import (
	"context"
	"io"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/json2types/internal/config"
	"github.com/usestring/json2types/pkg/optimize"
)

// serverConfig is assembled by the options before the server is built.
type serverConfig struct {
	config *config.Config

	logLevel  string
	logFile   string
	logWriter io.Writer

	withoutTools   bool
	withoutPrompts bool

	// extensions run in option order once Deps exist.
	extensions []func(*mcp.Server, *Deps)
}

// Option configures the server.
type Option func(*serverConfig)

func (c *serverConfig) extend(fn func(*mcp.Server, *Deps)) {
	c.extensions = append(c.extensions, fn)
}

// WithLogLevel overrides LOG_LEVEL (debug, info, warn, error).
func WithLogLevel(level string) Option {
	return func(cfg *serverConfig) { cfg.logLevel = level }
}

// WithLogFile overrides LOG_FILE. Logs then go to the rotated file only.
func WithLogFile(path string) Option {
	return func(cfg *serverConfig) { cfg.logFile = path }
}

// WithLogWriter sends logs to w instead of stderr when no log file is set.
func WithLogWriter(w io.Writer) Option {
	return func(cfg *serverConfig) { cfg.logWriter = w }
}

// WithOptimizeDefaults sets the optimizer passes used by tool calls that
// leave optimize unset.
func WithOptimizeDefaults(o optimize.Config) Option {
	return func(cfg *serverConfig) {
		cfg.config.MergeSimilar = o.MergeSimilar
		cfg.config.MergeNames = o.MergeByName
		cfg.config.MergeUnions = o.MergeUnions
	}
}

// WithoutBuiltinTools leaves out the infer tools and the result resource.
func WithoutBuiltinTools() Option {
	return func(cfg *serverConfig) { cfg.withoutTools = true }
}

// WithoutBuiltinPrompts leaves out the builtin prompts.
func WithoutBuiltinPrompts() Option {
	return func(cfg *serverConfig) { cfg.withoutPrompts = true }
}

// WithTool adds a tool. Its output type is checked as in AddTool.
//
//	type CountOutput struct {
//	    Records int `json:"records"`
//	}
//
//	mcpsrv.WithTool(&mcp.Tool{Name: "count"}, func(ctx context.Context, req *mcp.CallToolRequest, in CountInput) (*mcp.CallToolResult, CountOutput, error) {
//	    ...
//	})
func WithTool[In, Out any](tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.extend(func(srv *mcp.Server, _ *Deps) { AddTool(srv, tool, handler) })
	}
}

// WithDepsTool adds a tool whose handler is built from the server's Deps,
// for tools that read cached results or the configuration. See
// examples/result-records for a complete program.
func WithDepsTool[In, Out any](tool *mcp.Tool, build func(*Deps) func(context.Context, *mcp.CallToolRequest, In) (*mcp.CallToolResult, Out, error)) Option {
	return func(cfg *serverConfig) {
		cfg.extend(func(srv *mcp.Server, d *Deps) { AddTool(srv, tool, build(d)) })
	}
}

// WithPrompt adds a prompt.
func WithPrompt(prompt *mcp.Prompt, handler func(context.Context, *mcp.GetPromptRequest) (*mcp.GetPromptResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.extend(func(srv *mcp.Server, _ *Deps) { srv.AddPrompt(prompt, handler) })
	}
}

// WithResourceTemplate adds a resource template. Templates must not use the
// json2types:// scheme, which the builtin result resource owns.
func WithResourceTemplate(template *mcp.ResourceTemplate, handler func(context.Context, *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error)) Option {
	return func(cfg *serverConfig) {
		cfg.extend(func(srv *mcp.Server, _ *Deps) { srv.AddResourceTemplate(template, handler) })
	}
}
