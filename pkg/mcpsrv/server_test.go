package mcpsrv

import (
	"bytes"
	"context"
	"testing"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/json2types/pkg/optimize"
)

type countInput struct{}

type countOutput struct {
	Cached int `json:"cached"`
}

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	t.Chdir(t.TempDir())
	t.Setenv("LOG_FILE", "")
	t.Setenv("RESULT_CACHE_MAX_ITEMS", "")

	var logs bytes.Buffer
	s, err := NewServer(append([]Option{WithLogWriter(&logs), WithLogLevel("error")}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func listTools(t *testing.T, s *Server) []string {
	t.Helper()
	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()
	ss, err := s.MCPServer().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ss.Close() })

	cs, err := mcp.NewClient(&mcp.Implementation{Name: "client", Version: "0.0.0"}, nil).Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cs.Close() })

	res, err := cs.ListTools(ctx, nil)
	require.NoError(t, err)
	var names []string
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	return names
}

func TestNewServer_Defaults(t *testing.T) {
	s := newTestServer(t)

	require.NotNil(t, s.Deps())
	assert.Equal(t, 128, s.Deps().Config.ResultCacheMaxItems)
	assert.Equal(t, 0, s.Deps().Cache.Len())
	assert.Contains(t, listTools(t, s), "infer_from_samples")
}

func TestNewServer_DepsTool(t *testing.T) {
	s := newTestServer(t,
		WithoutBuiltinTools(),
		WithDepsTool(&mcp.Tool{Name: "cache_size", Description: "Number of cached results"},
			func(d *Deps) func(context.Context, *mcp.CallToolRequest, countInput) (*mcp.CallToolResult, countOutput, error) {
				return func(context.Context, *mcp.CallToolRequest, countInput) (*mcp.CallToolResult, countOutput, error) {
					return nil, countOutput{Cached: d.Cache.Len()}, nil
				}
			}),
	)
	assert.Equal(t, []string{"cache_size"}, listTools(t, s))
}

func TestWithOptimizeDefaults(t *testing.T) {
	want := optimize.Config{MergeSimilar: true, MergeUnions: true}
	s := newTestServer(t, WithOptimizeDefaults(want))
	assert.Equal(t, want, s.Deps().Config.Optimize())
}

func TestNewServer_CustomTools(t *testing.T) {
	handler := func(context.Context, *mcp.CallToolRequest, countInput) (*mcp.CallToolResult, countOutput, error) {
		return nil, countOutput{}, nil
	}
	s := newTestServer(t,
		WithoutBuiltinTools(),
		WithoutBuiltinPrompts(),
		WithTool(&mcp.Tool{Name: "first"}, handler),
		WithDepsTool(&mcp.Tool{Name: "second"},
			func(*Deps) func(context.Context, *mcp.CallToolRequest, countInput) (*mcp.CallToolResult, countOutput, error) {
				return handler
			}),
	)
	assert.ElementsMatch(t, []string{"first", "second"}, listTools(t, s))
}

func TestAddTool_RejectsNilSliceOutput(t *testing.T) {
	type listOutput struct {
		Names []string `json:"names"`
	}
	srv := mcp.NewServer(&mcp.Implementation{Name: "test"}, nil)
	assert.Panics(t, func() {
		AddTool(srv, &mcp.Tool{Name: "names"}, func(context.Context, *mcp.CallToolRequest, countInput) (*mcp.CallToolResult, listOutput, error) {
			return nil, listOutput{}, nil
		})
	})
}
