package mcp

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/json2types/internal/mcp/tools"
)

// Resource URI scheme: json2types://
// Supported URIs:
//   json2types://result/{key}

// registerResources registers resource templates and handlers.
func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(&sdkmcp.ResourceTemplate{
		URITemplate: tools.ResultURIPrefix + "{key}",
		Name:        "Inference Result",
		Description: "A cached inference result: JSON Schema, text listing, stats and verification report. The infer tools return the URI as result_uri; results are evicted least recently used first.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.5,
		},
	}, s.handleResourceResult)
}

func (s *Server) handleResourceResult(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	key, err := parseResultURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	out, ok := s.deps.Result(key)
	if !ok {
		return nil, sdkmcp.ResourceNotFoundError(req.Params.URI)
	}
	out.Cached = true

	return toResourceResult(req.Params.URI, out)
}

// parseResultURI extracts the cache key from a json2types://result/ URI.
func parseResultURI(uri string) (string, error) {
	key, ok := strings.CutPrefix(uri, tools.ResultURIPrefix)
	if !ok {
		return "", tools.ErrInvalidInput("invalid URI: expected " + tools.ResultURIPrefix + "{key}")
	}
	if b, err := hex.DecodeString(key); err != nil || len(b) != 32 {
		return "", tools.ErrInvalidInput(fmt.Sprintf("malformed result key: %q", key))
	}
	return key, nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
