package mcpsrv

import (
	"context"
	"fmt"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/json2types/internal/config"
	"github.com/usestring/json2types/internal/logging"
	"github.com/usestring/json2types/internal/mcp"
	"github.com/usestring/json2types/internal/mcp/tools"
)

// Server is the json2types MCP server.
type Server struct {
	internal   *mcp.Server
	deps       *Deps
	logCleanup func() error
}

// NewServer loads the configuration from the environment, applies opts and
// sets up logging. The builtin tools and prompts are registered unless an
// option leaves them out.
func NewServer(opts ...Option) (*Server, error) {
	cfg := &serverConfig{config: config.Load()}
	for _, opt := range opts {
		opt(cfg)
	}

	logCfg := logging.FromConfig(cfg.config)
	if cfg.logLevel != "" {
		logCfg.Level = cfg.logLevel
	}
	if cfg.logFile != "" {
		logCfg.FilePath = cfg.logFile
	}
	logCfg.Stderr = cfg.logWriter
	logCleanup, err := logging.Setup(logCfg)
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}

	toolDeps, err := tools.NewDeps(cfg.config)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("creating result cache: %w", err)
	}
	deps := &Deps{Config: cfg.config, Cache: toolDeps.Cache}

	var internalOpts []mcp.ServerOption
	if !cfg.withoutTools {
		internalOpts = append(internalOpts, mcp.WithBuiltinTools())
	}
	if !cfg.withoutPrompts {
		internalOpts = append(internalOpts, mcp.WithBuiltinPrompts())
	}
	for _, ext := range cfg.extensions {
		internalOpts = append(internalOpts, mcp.WithCustomRegistration(func(srv *sdkmcp.Server) {
			ext(srv, deps)
		}))
	}

	internal, err := mcp.NewServer(toolDeps, internalOpts...)
	if err != nil {
		_ = logCleanup()
		return nil, fmt.Errorf("creating server: %w", err)
	}
	return &Server{internal: internal, deps: deps, logCleanup: logCleanup}, nil
}

// Run serves over stdio until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	return s.internal.Run(ctx)
}

// Close flushes and closes the log file, if any.
func (s *Server) Close() error {
	if s.logCleanup != nil {
		return s.logCleanup()
	}
	return nil
}

// Deps returns what custom tools may use: the configuration and the result
// cache shared with the builtin tools.
func (s *Server) Deps() *Deps {
	return s.deps
}

// MCPServer returns the SDK server, for custom transports and tests.
func (s *Server) MCPServer() *sdkmcp.Server {
	return s.internal.MCPServer()
}
