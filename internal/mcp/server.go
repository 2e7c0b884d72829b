// Package mcp serves json2types inference over the Model Context Protocol.
package mcp

import (
	"context"
	"errors"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/json2types/internal/mcp/prompts"
	"github.com/usestring/json2types/internal/mcp/tools"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// Server holds the SDK server and the tool dependencies behind it.
type Server struct {
	mcpServer *sdkmcp.Server
	deps      *tools.Deps
}

type serverOptions struct {
	tools   bool
	prompts bool
	custom  []func(*sdkmcp.Server)
}

// ServerOption configures NewServer.
type ServerOption func(*serverOptions)

// WithBuiltinTools registers the infer tools and the result resource.
func WithBuiltinTools() ServerOption {
	return func(o *serverOptions) { o.tools = true }
}

// WithBuiltinPrompts registers the builtin prompts.
func WithBuiltinPrompts() ServerOption {
	return func(o *serverOptions) { o.prompts = true }
}

// WithCustomRegistration runs fn against the SDK server after the builtins
// are registered. Callbacks run in the order given.
func WithCustomRegistration(fn func(*sdkmcp.Server)) ServerOption {
	return func(o *serverOptions) { o.custom = append(o.custom, fn) }
}

// NewServer builds a server around deps. Nothing is registered unless an
// option asks for it.
func NewServer(deps *tools.Deps, opts ...ServerOption) (*Server, error) {
	if deps == nil {
		return nil, errors.New("deps is required")
	}
	var o serverOptions
	for _, opt := range opts {
		opt(&o)
	}

	s := &Server{
		mcpServer: sdkmcp.NewServer(&sdkmcp.Implementation{Name: "json2types", Version: Version}, nil),
		deps:      deps,
	}
	s.mcpServer.AddReceivingMiddleware(LoggingMiddleware())

	if o.tools {
		tools.Register(s.mcpServer, deps)
		s.registerResources()
	}
	if o.prompts {
		prompts.Register(s.mcpServer, &prompts.Config{Optimize: deps.Config.Optimize()})
	}
	for _, fn := range o.custom {
		fn(s.mcpServer)
	}
	return s, nil
}

// Run serves over stdin and stdout until ctx is done or the client hangs up.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &sdkmcp.StdioTransport{})
}

// MCPServer returns the SDK server, for in-memory transports and tests.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.mcpServer
}
